// Package stats derives dashboard statistics and chart series from the
// activity log.
//
// Everything here is a pure function of its inputs. Values are not rounded;
// formatting to two decimals is left to the presentation layer.
package stats

import (
	"math"
	"time"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/factors"
)

// Day is the bucket length used for DaysTracked.
const Day = 24 * time.Hour

// percentScale converts a ratio to a percentage.
const percentScale = 100

// DashboardStats summarises an activity log.
type DashboardStats struct {
	// Total is the sum of CO2e over all records, in kg.
	Total float64 `json:"total_co2e_kg"`
	// ByCategory holds the CO2e sum for each category; all categories are present.
	ByCategory map[factors.Category]float64 `json:"by_category_kg"`
	// Percent holds each category's share of Total; all zero when Total is zero.
	Percent map[factors.Category]float64 `json:"percent_of_total"`
	// Count is the number of records.
	Count int `json:"activity_count"`
	// DaysTracked is the number of days since the first logged record, at least 1.
	DaysTracked int `json:"days_tracked"`
	// DailyAverage is Total divided by DaysTracked.
	DailyAverage float64 `json:"daily_average_kg"`
}

// CategoryTotal returns the CO2e sum for c.
func (s DashboardStats) CategoryTotal(c factors.Category) float64 {
	return s.ByCategory[c]
}

// PercentOf returns c's share of the total.
func (s DashboardStats) PercentOf(c factors.Category) float64 {
	return s.Percent[c]
}

// ComputeStats aggregates records as of now.
//
// DaysTracked counts from the CreatedAt of the first record in insertion
// order, not the earliest timestamp in the log. An empty log, or a first
// record with no known time, tracks 1 day.
func ComputeStats(records []activity.Record, now time.Time) DashboardStats {
	s := DashboardStats{
		ByCategory: make(map[factors.Category]float64, len(factors.Categories)),
		Percent:    make(map[factors.Category]float64, len(factors.Categories)),
		Count:      len(records),
	}
	for _, c := range factors.Categories {
		s.ByCategory[c] = 0
	}

	for _, r := range records {
		s.Total += r.CO2e
		s.ByCategory[r.Category] += r.CO2e
	}

	for _, c := range factors.Categories {
		s.Percent[c] = PercentOfTotal(s.ByCategory[c], s.Total)
	}

	start := now
	if len(records) > 0 && !records[0].CreatedAt.IsZero() {
		start = records[0].CreatedAt
	}
	s.DaysTracked = DaysTracked(start, now)
	s.DailyAverage = s.Total / float64(s.DaysTracked)

	return s
}

// DaysTracked returns max(1, ceil((now - start) / Day)).
func DaysTracked(start, now time.Time) int {
	elapsed := now.Sub(start)
	days := int(math.Ceil(float64(elapsed) / float64(Day)))
	if days < 1 {
		return 1
	}
	return days
}

// PercentOfTotal returns part/total*100, or 0 when total is not positive.
func PercentOfTotal(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * percentScale
}
