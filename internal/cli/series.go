package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/factors"
	"github.com/rshade/carbontrack/internal/stats"
	"github.com/rshade/carbontrack/internal/tui"
)

// Series kinds accepted by the series command.
const (
	seriesTimeline  = "timeline"
	seriesBreakdown = "breakdown"
)

// seriesResult is the JSON shape of the series command.
type seriesResult struct {
	Kind    string              `json:"kind"`
	HasData bool                `json:"has_data"`
	Series  stats.LabeledSeries `json:"series"`
}

// NewSeriesCmd creates the series command that prints chart data.
func NewSeriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "series [timeline|breakdown]",
		Short: "Show chart series derived from the activity log",
		Long: `Shows chart-ready series.

timeline  one point per activity, labelled by category initial and position
          (T1, F2, E3). An empty log shows seven days of sample data.
breakdown total CO2e per category. An empty log shows a no-data message.`,
		Example: `  # Timeline chart
  carbontrack series

  # Category breakdown as JSON
  carbontrack series breakdown --output json`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{seriesTimeline, seriesBreakdown},
		RunE:      runSeries,
	}
}

func runSeries(cmd *cobra.Command, args []string) error {
	kind := seriesTimeline
	if len(args) == 1 {
		kind = args[0]
	}

	store, closeStore, err := openActivityStore(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	records := store.Records()
	result := seriesResult{Kind: kind}
	title := "TIMELINE"

	switch kind {
	case seriesTimeline:
		result.Series = stats.BuildTimelineSeries(records)
		result.HasData = len(records) > 0
	case seriesBreakdown:
		s := stats.ComputeStats(records, time.Now())
		result.Series = stats.BreakdownFromStats(s)
		result.HasData = stats.HasBreakdownData(
			s.CategoryTotal(factors.Transport), s.CategoryTotal(factors.Food), s.CategoryTotal(factors.Energy))
		title = "BREAKDOWN"
	default:
		return fmt.Errorf("unknown series %q", kind)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	out := cmd.OutOrStdout()
	if kind == seriesBreakdown && !result.HasData {
		_, _ = fmt.Fprintln(out, tui.EmptyBreakdownText)
		return nil
	}

	width := tui.TerminalWidth()
	if humanOutputMode() == tui.OutputModePlain {
		return tui.WriteChartPlain(out, title, result.Series, width)
	}
	_, _ = fmt.Fprintln(out, tui.RenderChart(title, result.Series, width))
	return nil
}
