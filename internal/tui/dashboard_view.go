package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/factors"
	"github.com/rshade/carbontrack/internal/stats"
)

// User-facing messages.
const (
	EmptyHistoryText   = "No activities tracked yet"
	EmptyBreakdownText = "No data available yet.\nStart tracking activities to see your breakdown."
	InvalidInputText   = "Please enter valid activity data."
)

// Layout constants.
const (
	borderPadding  = 2
	cardGap        = 1
	minCardWidth   = 18
	cardsPerRow    = 3
	tabPadding     = 2
	historyHeading = "ACTIVITY HISTORY"
)

// SubmittedMessage confirms a successful submission with its combined CO2e.
func SubmittedMessage(added []activity.Record) string {
	return fmt.Sprintf("Total emissions added: %s kg CO2e", stats.FormatKg(activity.TotalCO2e(added)))
}

// HistoryLine renders one record as a plain history row.
func HistoryLine(r activity.Record) string {
	return fmt.Sprintf("%s: %s — %s kg CO2e",
		strings.ToUpper(r.Category.String()), r.Description, stats.FormatKg(r.CO2e))
}

// PercentText renders a category share as "42% of total".
func PercentText(p float64) string {
	return stats.FormatPercent(p) + " of total"
}

// RenderDashboard renders the summary cards in a box.
func RenderDashboard(s stats.DashboardStats, width int) string {
	cardWidth := max((width-borderPadding*2)/cardsPerRow-cardGap-borderPadding, minCardWidth)

	overview := []string{
		renderCard("Total CO2e", stats.FormatKg(s.Total)+" kg", "", ColorHeader, cardWidth),
		renderCard("Daily Average", stats.FormatKg(s.DailyAverage)+" kg",
			fmt.Sprintf("over %d day(s)", s.DaysTracked), ColorHeader, cardWidth),
		renderCard("Activities Logged", strconv.Itoa(s.Count), "", ColorHeader, cardWidth),
	}

	perCategory := make([]string, 0, len(factors.Categories))
	for _, c := range factors.Categories {
		perCategory = append(perCategory, renderCard(
			c.Title(),
			stats.FormatKg(s.CategoryTotal(c))+" kg",
			PercentText(s.PercentOf(c)),
			CategoryColor(c),
			cardWidth,
		))
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render("CARBON DASHBOARD"))
	content.WriteString("\n")
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, spaced(overview)...))
	content.WriteString("\n")
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, spaced(perCategory)...))

	if eq := stats.ComputeEquivalencies(s.Total); !eq.IsEmpty {
		content.WriteString("\n")
		content.WriteString(SubtleStyle.Render(eq.DisplayText))
	}

	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

func renderCard(title, value, note string, accent lipgloss.Color, width int) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accent).Render(value))
	if note != "" {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(note))
	}
	return CardStyle.Width(width).Render(b.String())
}

func spaced(blocks []string) []string {
	gap := strings.Repeat(" ", cardGap)
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, b)
	}
	return out
}

// RenderHistory renders the activity history in a box, oldest first.
func RenderHistory(records []activity.Record, width int) string {
	var content strings.Builder
	content.WriteString(HeaderStyle.Render(historyHeading))

	if len(records) == 0 {
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render(EmptyHistoryText))
		return BoxStyle.Width(width - borderPadding).Render(content.String())
	}

	for _, r := range records {
		content.WriteString("\n")
		content.WriteString(CategoryStyle(r.Category).Render(strings.ToUpper(r.Category.String())))
		content.WriteString(LabelStyle.Render(": " + r.Description + " — "))
		content.WriteString(ValueStyle.Render(stats.FormatKg(r.CO2e) + " kg CO2e"))
	}
	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

// WriteDashboardPlain writes the dashboard as aligned plain text.
func WriteDashboardPlain(w io.Writer, s stats.DashboardStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Total CO2e:\t%s kg\n", stats.FormatKg(s.Total))
	fmt.Fprintf(tw, "Daily Average:\t%s kg\t(over %d day(s))\n", stats.FormatKg(s.DailyAverage), s.DaysTracked)
	fmt.Fprintf(tw, "Activities Logged:\t%d\n", s.Count)
	for _, c := range factors.Categories {
		fmt.Fprintf(tw, "%s:\t%s kg\t%s\n", c.Title(), stats.FormatKg(s.CategoryTotal(c)), PercentText(s.PercentOf(c)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if eq := stats.ComputeEquivalencies(s.Total); !eq.IsEmpty {
		if _, err := fmt.Fprintln(w, eq.DisplayText); err != nil {
			return err
		}
	}
	return nil
}

// WriteHistoryPlain writes one history line per record, or the empty-state text.
func WriteHistoryPlain(w io.Writer, records []activity.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, EmptyHistoryText)
		return err
	}
	for _, r := range records {
		if _, err := fmt.Fprintln(w, HistoryLine(r)); err != nil {
			return err
		}
	}
	return nil
}
