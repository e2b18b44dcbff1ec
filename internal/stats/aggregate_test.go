package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/factors"
)

func record(c factors.Category, co2e float64, at time.Time) activity.Record {
	return activity.Record{ID: at.String(), Category: c, CO2e: co2e, CreatedAt: at}
}

func TestComputeStats_Empty(t *testing.T) {
	t.Parallel()

	s := ComputeStats(nil, time.Now())
	assert.Zero(t, s.Total)
	assert.Zero(t, s.Count)
	assert.Equal(t, 1, s.DaysTracked)
	assert.Zero(t, s.DailyAverage)
	for _, c := range factors.Categories {
		v, ok := s.ByCategory[c]
		assert.True(t, ok, c.String())
		assert.Zero(t, v)
		assert.Zero(t, s.PercentOf(c))
	}
}

func TestComputeStats_Totals(t *testing.T) {
	t.Parallel()

	start := time.UnixMilli(1_700_000_000_000)
	records := []activity.Record{
		record(factors.Transport, 17, start),
		record(factors.Food, 14, start.Add(time.Hour)),
		record(factors.Energy, 4, start.Add(2*time.Hour)),
		record(factors.Transport, 5, start.Add(3*time.Hour)),
	}

	s := ComputeStats(records, start.Add(3*time.Hour))
	assert.InDelta(t, 40.0, s.Total, 1e-9)
	assert.InDelta(t, 22.0, s.CategoryTotal(factors.Transport), 1e-9)
	assert.InDelta(t, 14.0, s.CategoryTotal(factors.Food), 1e-9)
	assert.InDelta(t, 4.0, s.CategoryTotal(factors.Energy), 1e-9)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 1, s.DaysTracked)
	assert.InDelta(t, 40.0, s.DailyAverage, 1e-9)
	assert.InDelta(t, 55.0, s.PercentOf(factors.Transport), 1e-9)
	assert.InDelta(t, 35.0, s.PercentOf(factors.Food), 1e-9)
	assert.InDelta(t, 10.0, s.PercentOf(factors.Energy), 1e-9)
}

func TestComputeStats_CategoriesPartitionTotal(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(10_000_000)
	records := []activity.Record{
		record(factors.Transport, 0.17, now),
		record(factors.Food, 1.5, now),
		record(factors.Energy, 0.4, now),
		record(factors.Food, 7, now),
		record(factors.Transport, 0, now),
	}

	s := ComputeStats(records, now)
	sum := 0.0
	pct := 0.0
	for _, c := range factors.Categories {
		sum += s.CategoryTotal(c)
		pct += s.PercentOf(c)
	}
	assert.InDelta(t, s.Total, sum, 1e-9)
	assert.InDelta(t, 100.0, pct, 1e-9)
	assert.InDelta(t, activity.TotalCO2e(records), s.Total, 1e-9)
}

func TestComputeStats_IsPure(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_000_000)
	records := []activity.Record{record(factors.Energy, 4, now)}
	assert.Equal(t, ComputeStats(records, now), ComputeStats(records, now))
}

func TestComputeStats_DaysTrackedUsesFirstRecord(t *testing.T) {
	t.Parallel()

	base := time.UnixMilli(1_700_000_000_000)
	records := []activity.Record{
		record(factors.Food, 3, base.Add(-Day)),
		record(factors.Food, 3, base.Add(-10*Day)),
	}

	s := ComputeStats(records, base.Add(time.Hour))
	assert.Equal(t, 2, s.DaysTracked)
	assert.InDelta(t, 3.0, s.DailyAverage, 1e-9)
}

func TestComputeStats_FirstRecordWithoutTime(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	records := []activity.Record{
		{ID: "legacy-1", Category: factors.Transport, CO2e: 10},
		record(factors.Food, 4, now.Add(-5*Day)),
	}

	s := ComputeStats(records, now)
	assert.Equal(t, 1, s.DaysTracked)
	assert.InDelta(t, 14.0, s.DailyAverage, 1e-9)
}

func TestDaysTracked(t *testing.T) {
	t.Parallel()

	start := time.UnixMilli(0)
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"same instant", 0, 1},
		{"one millisecond", time.Millisecond, 1},
		{"exactly one day", Day, 1},
		{"just over a day", Day + time.Millisecond, 2},
		{"ten days", 10 * Day, 10},
		{"clock skew", -time.Hour, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DaysTracked(start, start.Add(tt.elapsed)))
		})
	}
}

func TestComputeStats_AfterClear(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(5_000)
	before := ComputeStats([]activity.Record{record(factors.Food, 14, now)}, now)
	require.Equal(t, 1, before.Count)

	after := ComputeStats([]activity.Record{}, now)
	assert.Zero(t, after.Total)
	assert.Equal(t, 1, after.DaysTracked)
	assert.Equal(t, ComputeStats(nil, now), after)
}

func TestPercentOfTotal(t *testing.T) {
	t.Parallel()

	assert.Zero(t, PercentOfTotal(5, 0))
	assert.InDelta(t, 25.0, PercentOfTotal(1, 4), 1e-9)
}
