package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/cli/pagination"
	"github.com/rshade/carbontrack/internal/tui"
)

// historyResult is the JSON shape of the history command.
type historyResult struct {
	Records    []activity.Record `json:"records"`
	Pagination pagination.Meta   `json:"pagination"`
}

// NewHistoryCmd creates the history command listing every logged activity.
func NewHistoryCmd() *cobra.Command {
	var params pagination.Params

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List logged activities in insertion order",
		Example: `  # Show all activities
  carbontrack history

  # Show the second page of ten
  carbontrack history --page 2 --page-size 10

  # Largest emitters first
  carbontrack history --sort co2e:desc --limit 5

  # Export the log as JSON
  carbontrack history --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, params)
		},
	}

	params.AddFlags(cmd)

	return cmd
}

func runHistory(cmd *cobra.Command, params pagination.Params) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid pagination: %w", err)
	}

	store, closeStore, err := openActivityStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	all, err := pagination.NewRecordSorter().SortExpression(store.Records(), params.Sort)
	if err != nil {
		return err
	}
	records := pagination.Apply(params, all)

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), historyResult{
			Records:    records,
			Pagination: pagination.NewMeta(params, len(all)),
		})
	}

	out := cmd.OutOrStdout()
	if humanOutputMode() == tui.OutputModePlain {
		return tui.WriteHistoryPlain(out, records)
	}
	_, _ = fmt.Fprintln(out, tui.RenderHistory(records, tui.TerminalWidth()))
	return nil
}
