package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/internal/presentation/graph"
	loamAdapter "github.com/aretw0/cadence/pkg/adapters/loam"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the wizard steps of the catalog",
	Long: `Loads the step catalog (the --steps directory, or the built-in schedule creator
steps) and prints each step with its controls. Use --mermaid to export a flowchart
and --watch to reprint whenever a step document changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		watch, _ := cmd.Flags().GetBool("watch")

		catalog, err := cadence.NewCatalog(cfg.Steps.Dir)
		if err != nil {
			return err
		}

		show := func(ctx context.Context) error {
			return printSteps(ctx, cmd.OutOrStdout(), catalog, mermaid)
		}
		if !watch {
			return show(cmd.Context())
		}

		watcher, ok := catalog.(*loamAdapter.Loader)
		if !ok {
			return fmt.Errorf("--watch requires a step directory")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return watchSteps(ctx, watcher, show)
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
	stepsCmd.Flags().Bool("mermaid", false, "Print a Mermaid flowchart instead of a list")
	stepsCmd.Flags().BoolP("watch", "w", false, "Reprint when a step document changes")
}

func printSteps(ctx context.Context, w io.Writer, catalog ports.StepLoader, mermaid bool) error {
	seq, err := cadence.NewSequence(ctx, catalog, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	if mermaid {
		_, err = fmt.Fprint(w, graph.GenerateMermaid(seq.All(), -1))
		return err
	}
	for _, s := range seq.All() {
		fmt.Fprintf(w, "%d. %s%s\n", s.Index+1, s.Label, controls(s.Nav))
	}
	return nil
}

func controls(nav domain.Navigation) string {
	out := ""
	if nav.HasBack {
		out += " [back]"
	}
	if nav.HasNext {
		out += fmt.Sprintf(" [%s]", nav.NextLabel)
	}
	if nav.HasFinish {
		out += fmt.Sprintf(" [%s]", nav.FinishLabel)
	}
	return out
}

// watchSteps prints once, then again after every change, until ctx is done.
// A broken catalog is logged and the watch goes on.
func watchSteps(ctx context.Context, watcher *loamAdapter.Loader, show func(context.Context) error) error {
	changes, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	if err := show(ctx); err != nil {
		logger.Error("failed to load steps", "err", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case id, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("step changed", "id", id)
			if err := show(ctx); err != nil {
				logger.Error("failed to load steps", "err", err)
			}
		}
	}
}
