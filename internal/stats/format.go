package stats

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands for equivalency counts.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Scale thresholds for abbreviated counts.
const (
	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)

// FormatKg renders a CO2e value with exactly two decimals, e.g. "17.00".
func FormatKg(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatPercent renders a share of the total as a whole percentage, e.g. "42%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

// FormatCount renders a count with thousand separators, e.g. "18,248".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatApprox rounds v and renders it for display. Millions and billions are
// abbreviated ("~1.5 million").
func FormatApprox(v float64) string {
	switch {
	case v >= billionThreshold:
		return fmt.Sprintf("~%.1f billion", v/billionThreshold)
	case v >= millionThreshold:
		return fmt.Sprintf("~%.1f million", v/millionThreshold)
	default:
		return FormatCount(int64(math.Round(v)))
	}
}
