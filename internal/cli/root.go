package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Global flag names.
const (
	flagDebug   = "debug"
	flagStore   = "store"
	flagDataDir = "data-dir"
	flagOutput  = "output"
)

// NewRootCmd creates the root Cobra command for the carbontrack CLI.
// It wires up logging, tracing, the global store/output overrides and the
// log, dashboard, history, series, clear, factors and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "carbontrack",
		Short:         "Personal carbon footprint tracker",
		Long:          "carbontrack: log daily transport, food and electricity use and see the CO2e it adds up to",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyGlobalFlags(cmd); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(flagStore, "", "storage backend: file, memory or redis (overrides config)")
	cmd.PersistentFlags().String(flagDataDir, "", "directory for the file backend (overrides config)")
	cmd.PersistentFlags().StringP(flagOutput, "o", "", "output format: table or json (overrides config)")

	cmd.AddCommand(
		NewLogCmd(), NewDashboardCmd(), NewHistoryCmd(), NewSeriesCmd(),
		NewClearCmd(), NewFactorsCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Log a 12 km car trip and 1 kg of mixed meals
  carbontrack log --mode car --distance 12 --diet mixed --meals 1

  # Open the interactive form
  carbontrack log

  # Show the dashboard
  carbontrack dashboard

  # Export the category breakdown as JSON
  carbontrack series breakdown --output json

  # Use a throwaway in-memory log
  carbontrack --store memory log --electricity 8

  # Initialize configuration
  carbontrack config init`

// applyGlobalFlags copies explicitly set global flags onto the global config.
// CLI flags win over the config file and environment.
func applyGlobalFlags(cmd *cobra.Command) error {
	cfg := config.GetGlobalConfig()
	flags := cmd.Flags()

	if flags.Changed(flagStore) {
		backend, _ := flags.GetString(flagStore)
		cfg.Store.Backend = backend
	}
	if flags.Changed(flagDataDir) {
		dir, _ := flags.GetString(flagDataDir)
		cfg.Store.Directory = dir
	}
	if flags.Changed(flagOutput) {
		format, _ := flags.GetString(flagOutput)
		cfg.Output.DefaultFormat = format
	}

	if err := validateOutputFormat(cfg.Output.DefaultFormat); err != nil {
		return err
	}
	return nil
}

func validateOutputFormat(format string) error {
	switch format {
	case config.FormatTable, config.FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be %s or %s", format, config.FormatTable, config.FormatJSON)
	}
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
