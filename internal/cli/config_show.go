package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/carbontrack/internal/config"
)

// NewConfigShowCmd creates the config show command printing the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Prints the configuration in effect after merging defaults, the config file,
environment variables and command-line flags, as YAML. Secrets are redacted.`,
		Example: `  # Show configuration
  carbontrack config show

  # Show configuration with a flag override applied
  carbontrack --store memory config show`,
		RunE: runConfigShow,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg := config.GetGlobalConfig().Redacted()

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
