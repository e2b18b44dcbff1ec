package stats

import (
	"fmt"
	"strings"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/factors"
)

// Dataset labels.
const (
	TimelineDatasetLabel  = "Total Emissions per Entry"
	BreakdownDatasetLabel = "CO2e Contribution (kg)"
	placeholderSuffix     = " (Mock)"
	placeholderDays       = 7
)

// Dataset is one named series of values.
type Dataset struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
	// Category is set for per-category datasets.
	Category *factors.Category `json:"category,omitempty"`
}

// LabeledSeries is chart-ready data: one label per point, one or more datasets.
type LabeledSeries struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	// Placeholder marks illustrative filler that is not derived from the log.
	Placeholder bool `json:"placeholder"`
}

// placeholderValues is the illustrative timeline shown before anything is logged.
//
//nolint:gochecknoglobals // Fixed literal filler data.
var placeholderValues = map[factors.Category][placeholderDays]float64{
	factors.Transport: {2.5, 3.1, 2.0, 4.5, 3.0, 5.2, 3.8},
	factors.Food:      {1.5, 1.8, 1.3, 2.0, 1.7, 2.5, 2.1},
	factors.Energy:    {0.8, 0.9, 0.7, 1.0, 0.9, 1.1, 1.0},
}

// BuildTimelineSeries returns one point per record, labelled by category
// initial and 1-based position (e.g. "T1", "F2"). An empty log yields a
// seven-day placeholder series with one dataset per category.
func BuildTimelineSeries(records []activity.Record) LabeledSeries {
	if len(records) == 0 {
		return placeholderTimeline()
	}

	labels := make([]string, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		labels[i] = timelineLabel(r.Category, i)
		values[i] = r.CO2e
	}

	return LabeledSeries{
		Labels:   labels,
		Datasets: []Dataset{{Label: TimelineDatasetLabel, Values: values}},
	}
}

func timelineLabel(c factors.Category, index int) string {
	name := c.String()
	initial := ""
	if name != "" {
		initial = strings.ToUpper(name[:1])
	}
	return fmt.Sprintf("%s%d", initial, index+1)
}

func placeholderTimeline() LabeledSeries {
	labels := make([]string, placeholderDays)
	for i := range labels {
		labels[i] = fmt.Sprintf("Day %d", i+1)
	}

	datasets := make([]Dataset, 0, len(factors.Categories))
	for _, c := range factors.Categories {
		vals := placeholderValues[c]
		values := make([]float64, placeholderDays)
		copy(values, vals[:])
		category := c
		datasets = append(datasets, Dataset{
			Label:    c.Title() + placeholderSuffix,
			Values:   values,
			Category: &category,
		})
	}

	return LabeledSeries{Labels: labels, Datasets: datasets, Placeholder: true}
}

// BuildBreakdownSeries returns the three category totals as one dataset.
// Callers should check HasBreakdownData first and show an empty state instead
// when it is false.
func BuildBreakdownSeries(transport, food, energy float64) LabeledSeries {
	labels := make([]string, len(factors.Categories))
	for i, c := range factors.Categories {
		labels[i] = c.Title()
	}
	return LabeledSeries{
		Labels:   labels,
		Datasets: []Dataset{{Label: BreakdownDatasetLabel, Values: []float64{transport, food, energy}}},
	}
}

// BreakdownFromStats builds the breakdown series from aggregated stats.
func BreakdownFromStats(s DashboardStats) LabeledSeries {
	return BuildBreakdownSeries(
		s.CategoryTotal(factors.Transport),
		s.CategoryTotal(factors.Food),
		s.CategoryTotal(factors.Energy),
	)
}

// HasBreakdownData reports whether any category has a positive total.
func HasBreakdownData(transport, food, energy float64) bool {
	return transport+food+energy > 0
}
