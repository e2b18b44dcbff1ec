package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbontrack/internal/stats"
)

// Bar chart glyphs.
const (
	barGlyph      = "█"
	plainBarGlyph = "#"
	minBarWidth   = 10
	valueColWidth = 8
)

// RenderChart draws a labelled series as horizontal bars, one group per
// dataset. Placeholder series are marked as sample data.
func RenderChart(title string, series stats.LabeledSeries, width int) string {
	var content strings.Builder
	content.WriteString(HeaderStyle.Render(title))
	if series.Placeholder {
		content.WriteString(" ")
		content.WriteString(SubtleStyle.Render("(sample data)"))
	}

	labelWidth := maxLabelWidth(series.Labels)
	barWidth := max(width-labelWidth-valueColWidth-borderPadding*4, minBarWidth)
	peak := seriesPeak(series)

	for _, ds := range series.Datasets {
		accent := ColorHeader
		if ds.Category != nil {
			accent = CategoryColor(*ds.Category)
		}
		bar := lipgloss.NewStyle().Foreground(accent)

		content.WriteString("\n")
		content.WriteString(LabelStyle.Render(ds.Label))
		for i, v := range ds.Values {
			content.WriteString("\n")
			fmt.Fprintf(&content, "%-*s ", labelWidth, labelAt(series.Labels, i))
			content.WriteString(bar.Render(strings.Repeat(barGlyph, barLength(v, peak, barWidth))))
			content.WriteString(" ")
			content.WriteString(ValueStyle.Render(stats.FormatKg(v)))
		}
	}

	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

// RenderBreakdown draws the category breakdown, or the empty-state text when
// nothing has been logged.
func RenderBreakdown(s stats.DashboardStats, width int) string {
	if s.Total <= 0 {
		return BoxStyle.Width(width - borderPadding).Render(
			HeaderStyle.Render("BREAKDOWN") + "\n" + InfoStyle.Render(EmptyBreakdownText))
	}
	return RenderChart("BREAKDOWN", stats.BreakdownFromStats(s), width)
}

// WriteChartPlain writes a series as plain text bars.
func WriteChartPlain(w io.Writer, title string, series stats.LabeledSeries, width int) error {
	header := title
	if series.Placeholder {
		header += " (sample data)"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	labelWidth := maxLabelWidth(series.Labels)
	barWidth := max(width-labelWidth-valueColWidth-borderPadding, minBarWidth)
	peak := seriesPeak(series)

	for _, ds := range series.Datasets {
		if _, err := fmt.Fprintln(w, ds.Label); err != nil {
			return err
		}
		for i, v := range ds.Values {
			_, err := fmt.Fprintf(w, "%-*s %s %s\n", labelWidth, labelAt(series.Labels, i),
				strings.Repeat(plainBarGlyph, barLength(v, peak, barWidth)), stats.FormatKg(v))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func barLength(v, peak float64, width int) int {
	if peak <= 0 || v <= 0 {
		return 0
	}
	n := int(v / peak * float64(width))
	if n == 0 {
		return 1
	}
	return n
}

func seriesPeak(series stats.LabeledSeries) float64 {
	peak := 0.0
	for _, ds := range series.Datasets {
		for _, v := range ds.Values {
			peak = max(peak, v)
		}
	}
	return peak
}

func maxLabelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, lipgloss.Width(l))
	}
	return w
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
