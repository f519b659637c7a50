package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/cadence/internal/config"
	"github.com/aretw0/cadence/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Cadence tracks service sessions and creates schedules",
	Long: `Cadence groups this week's service sessions by day and walks you through
creating a service schedule with a four-step wizard.

The same engines are exposed in the terminal, over HTTP and as MCP tools.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./cadence.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().String("steps", "", "Directory containing the wizard step catalog")
	rootCmd.PersistentFlags().String("fixture", "", "YAML fixture with metadata, sessions and the schedule model")
}

// initConfig loads the configuration and applies flag overrides.
func initConfig(cmd *cobra.Command) error {
	loader := config.NewLoader()

	var err error
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = loader.LoadFromFile(path)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("steps") {
		cfg.Steps.Dir, _ = flags.GetString("steps")
	}
	if flags.Changed("fixture") {
		cfg.Data.Fixture, _ = flags.GetString("fixture")
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger = logging.NewWithFormat(os.Stderr, level, cfg.Log.Format)
	slog.SetDefault(logger)

	if used := loader.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "file", used)
	}
	return nil
}
