package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file at ~/.carbontrack/config.yaml for syntax and semantic correctness.

This includes:
- YAML syntax and known top-level sections
- Allowed values for the store backend, output format and log level
- Redis connection settings when the redis backend is selected
- Schema version compatibility`,
		Example: `  # Validate current configuration
  carbontrack config validate

  # Validate and show detailed information
  carbontrack config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path := config.ConfigPath()

	cfg := config.Defaults()
	if _, err := os.Stat(path); err == nil {
		loaded, loadErr := config.Load(path)
		if loadErr != nil {
			return fmt.Errorf("configuration validation failed: %w", loadErr)
		}
		cfg = loaded
	} else if verbose {
		cmd.Printf("No configuration file at %s, validating defaults\n", path)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Println("Configuration is valid")

	if verbose {
		cmd.Printf("Configuration file: %s\n", path)
		cmd.Printf("Version: %s\n", cfg.Version)
		cmd.Printf("Store backend: %s\n", cfg.Store.Backend)
		cmd.Printf("Storage key: %s\n", cfg.Store.Key)
		cmd.Printf("Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("Log level: %s\n", cfg.Logging.Level)
		cmd.Printf("Redirect delay: %s\n", cfg.Dashboard.RedirectDelay)
	}

	return nil
}
