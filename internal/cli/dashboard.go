package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/stats"
	"github.com/rshade/carbontrack/internal/tui"
)

// dashboardResult is the JSON shape of the dashboard command.
type dashboardResult struct {
	Stats        stats.DashboardStats `json:"stats"`
	Equivalency  stats.Equivalencies  `json:"equivalencies"`
	GeneratedAt  time.Time            `json:"generated_at"`
	StorageKey   string               `json:"storage_key"`
	HasBreakdown bool                 `json:"has_breakdown"`
}

// NewDashboardCmd creates the dashboard command.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show total emissions, category breakdown and history",
		Long: `Shows the dashboard for the activity log: total CO2e, per-category totals
and shares, the daily average since the first logged activity, and the full
activity history.

On an interactive terminal the dashboard is a tabbed view with timeline and
breakdown charts; press x to clear all data. Otherwise a static summary is
printed.`,
		Example: `  # Open the dashboard
  carbontrack dashboard

  # Print the statistics as JSON
  carbontrack dashboard --output json`,
		RunE: runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, closeStore, err := openActivityStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if jsonOutput() {
		s := stats.ComputeStats(store.Records(), time.Now())
		return writeJSON(cmd.OutOrStdout(), dashboardResult{
			Stats:        s,
			Equivalency:  stats.ComputeEquivalencies(s.Total),
			GeneratedAt:  time.Now().UTC(),
			StorageKey:   store.Key(),
			HasBreakdown: s.Total > 0,
		})
	}

	if humanOutputMode() == tui.OutputModeInteractive {
		model := tui.NewDashboardModel(ctx, store)
		p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running dashboard: %w", err)
		}
		return nil
	}

	return printDashboard(cmd, store.Records())
}
