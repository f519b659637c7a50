package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show this week's service sessions grouped by day",
	Long: `Loads session metadata and records from the configured fixture, groups the
records by start date and prints one section per day. Today's group is marked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := a.view(cmd.Context(), domain.LifecycleHooks{})
		if err != nil {
			return err
		}

		if jsonMode {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view.Buckets())
		}
		return printBuckets(cmd.OutOrStdout(), view.Buckets(), isTerminal(os.Stdout) && cfg.Output.Markdown)
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().Bool("json", false, "Print the buckets as JSON")
}

func printBuckets(w io.Writer, buckets []domain.Bucket, rich bool) error {
	render := tui.PlainRenderer
	if rich {
		render = tui.NewRenderer(terminalWidth(os.Stdout))
	}
	out, err := render(tui.RenderBuckets(buckets))
	if err != nil {
		return fmt.Errorf("failed to render sessions: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
