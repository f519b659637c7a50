package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/observability"
	"github.com/aretw0/cadence/pkg/schedule"
	"github.com/aretw0/cadence/pkg/sessions"
	"github.com/spf13/cobra"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Create a service schedule interactively",
	Long: `Walks through the schedule creator: name the schedule, review this week's
sessions, pick participants and save. Saved schedules go to the configured
store (the fixture backend, or Redis).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceID, _ := cmd.Flags().GetString("service")

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		hooks := observability.Hooks(nil, logger)
		view, err := a.view(cmd.Context(), hooks)
		if err != nil {
			return err
		}

		opts := []schedule.Option{
			schedule.WithPersister(a.persister),
			schedule.WithHooks(hooks),
			schedule.WithLogger(logger),
		}
		if serviceID != "" {
			opts = append(opts, schedule.WithServiceID(serviceID))
		}
		creator, err := schedule.Load(cmd.Context(), a.backend, opts...)
		if err != nil {
			return err
		}

		rich := isTerminal(os.Stdin) && isTerminal(os.Stdout)
		render := tui.PlainRenderer
		if rich && cfg.Output.Markdown {
			render = tui.NewRenderer(terminalWidth(os.Stdout))
		}
		if rich && cfg.Output.Banner {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		return runWizard(cmd.Context(), creator, view, cmd.InOrStdin(), cmd.OutOrStdout(), render)
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
	wizardCmd.Flags().String("service", "", "Service id stamped on new schedules")
}

// runWizard drives the creator from line-based input until the user quits,
// finishes, or input ends.
func runWizard(ctx context.Context, c *schedule.Creator, view *sessions.View, in io.Reader, out io.Writer, render tui.Renderer) error {
	scanner := bufio.NewScanner(in)
	readLine := func(prompt string) (string, bool) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	shown := -1
	for !c.Closed() {
		step := c.Current()
		if step.Index != shown {
			showStep(out, c, view, render)
			shown = step.Index
		}

		line, ok := readLine("> ")
		if !ok {
			return scanner.Err()
		}

		switch strings.ToLower(line) {
		case "q", "quit", "exit":
			return nil

		case "r", "restart":
			c.Init()
			shown = -1

		case "b", "back":
			if step.Nav.HasBack {
				c.Back(ctx)
			}

		case "f", "finish":
			if !step.Nav.HasFinish {
				continue
			}
			if err := c.Finish(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, c.Label(schedule.LabelSuccess))

		case "n", "next", "":
			if !step.Nav.HasNext {
				continue
			}
			input, ok := collectInput(step.Index, c.Model(), readLine)
			if !ok {
				return scanner.Err()
			}
			if err := c.Next(ctx, input); err != nil {
				var vErr *domain.ValidationError
				if errors.As(err, &vErr) {
					fmt.Fprintf(out, "%s\n", vErr.Reason)
					continue
				}
				return err
			}
			if step.Index == schedule.StepReviewSchedule {
				fmt.Fprintln(out, c.Label(schedule.LabelSuccess))
				shown = -1
			}

		default:
			fmt.Fprintf(out, "unknown command %q\n", line)
		}
	}
	return nil
}

// collectInput asks for what the current step's form holds.
func collectInput(index int, model domain.ScheduleModel, readLine func(string) (string, bool)) (schedule.Input, bool) {
	switch index {
	case schedule.StepNewSchedule:
		name, ok := readLine("Schedule name: ")
		if !ok {
			return schedule.Input{}, false
		}
		form := domain.Record{}
		for k, v := range model.Schedule {
			form[k] = v
		}
		form[domain.FieldName] = name
		return schedule.Input{Schedule: form}, true

	case schedule.StepAddParticipants:
		line, ok := readLine("Participants (comma separated, blank for none): ")
		if !ok {
			return schedule.Input{}, false
		}
		participants := []domain.Record{}
		for _, name := range strings.Split(line, ",") {
			if name = strings.TrimSpace(name); name != "" {
				participants = append(participants, domain.Record{domain.FieldName: name})
			}
		}
		return schedule.Input{Participants: participants}, true
	}
	return schedule.Input{}, true
}

func showStep(out io.Writer, c *schedule.Creator, view *sessions.View, render tui.Renderer) {
	step := c.Current()
	fmt.Fprintln(out)
	fmt.Fprintln(out, tui.StepIndicator(c.Steps(), step.Index))

	var body string
	switch step.Index {
	case schedule.StepReviewSessions:
		body = tui.RenderBuckets(view.Buckets())
	case schedule.StepReviewSchedule:
		body = reviewMarkdown(c.Model())
	}
	if body != "" {
		if rendered, err := render(body); err == nil {
			body = rendered
		}
		fmt.Fprint(out, body)
	}
	fmt.Fprintln(out, tui.ControlsHint(step))
}

func reviewMarkdown(model domain.ScheduleModel) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %v\n\n", model.Schedule[domain.FieldName]))
	if svc, ok := model.Schedule[domain.FieldService]; ok {
		sb.WriteString(fmt.Sprintf("Service: `%v`\n\n", svc))
	}
	if len(model.SelectedParticipants) == 0 {
		sb.WriteString("_No participants._\n")
		return sb.String()
	}
	for _, p := range model.SelectedParticipants {
		sb.WriteString(fmt.Sprintf("- %v\n", p[domain.FieldName]))
	}
	return sb.String()
}
