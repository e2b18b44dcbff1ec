package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/factors"
)

// NewFactorsCmd creates the factors command listing emission coefficients.
func NewFactorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factors",
		Short: "List the emission factors used to compute CO2e",
		Example: `  # Show the factor table
  carbontrack factors

  # As JSON
  carbontrack factors --output json`,
		RunE: runFactors,
	}
}

func runFactors(cmd *cobra.Command, _ []string) error {
	all := factors.All()
	out := cmd.OutOrStdout()

	if jsonOutput() {
		return writeJSON(out, all)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tKEY\tKG CO2E PER UNIT\tUNIT")
	for _, f := range all {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%s\n", f.Category.Title(), f.Key, f.Coefficient, f.Unit)
	}
	return tw.Flush()
}
