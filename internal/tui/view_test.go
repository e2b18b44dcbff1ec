package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/factors"
	"github.com/rshade/carbontrack/internal/stats"
)

func sampleRecords() []activity.Record {
	at := time.UnixMilli(1_700_000_000_000)
	return []activity.Record{
		{ID: "1", Category: factors.Transport, CO2e: 17, Description: "Car - 100 km", CreatedAt: at},
		{ID: "2", Category: factors.Food, CO2e: 14, Description: "Meat - 2 kg", CreatedAt: at},
		{ID: "3", Category: factors.Energy, CO2e: 4, Description: "Electricity - 10 kWh", CreatedAt: at},
	}
}

func TestHistoryLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TRANSPORT: Car - 100 km — 17.00 kg CO2e", HistoryLine(sampleRecords()[0]))
	assert.Equal(t, "ENERGY: Electricity - 10 kWh — 4.00 kg CO2e", HistoryLine(sampleRecords()[2]))
}

func TestSubmittedMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Total emissions added: 35.00 kg CO2e", SubmittedMessage(sampleRecords()))
	assert.Equal(t, "Total emissions added: 0.00 kg CO2e", SubmittedMessage(nil))
}

func TestWriteHistoryPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteHistoryPlain(&buf, nil))
	assert.Equal(t, EmptyHistoryText+"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteHistoryPlain(&buf, sampleRecords()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "FOOD: Meat - 2 kg — 14.00 kg CO2e", lines[1])
}

func TestWriteDashboardPlain(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	s := stats.ComputeStats(records, records[0].CreatedAt)

	var buf bytes.Buffer
	require.NoError(t, WriteDashboardPlain(&buf, s))
	out := buf.String()
	assert.Contains(t, out, "Total CO2e:")
	assert.Contains(t, out, "35.00 kg")
	assert.Contains(t, out, "Activities Logged:")
	assert.Contains(t, out, "49% of total")
	assert.Contains(t, out, "40% of total")
	assert.Contains(t, out, "11% of total")
	assert.Contains(t, out, "Equivalent to driving ~182 miles")

	buf.Reset()
	require.NoError(t, WriteDashboardPlain(&buf, stats.ComputeStats(nil, time.Now())))
	assert.Contains(t, buf.String(), "0% of total")
	assert.NotContains(t, buf.String(), "Equivalent")
}

func TestRenderDashboard(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	out := RenderDashboard(stats.ComputeStats(records, records[0].CreatedAt), 120)
	assert.Contains(t, out, "CARBON DASHBOARD")
	assert.Contains(t, out, "Transport")
	assert.Contains(t, out, "17.00 kg")
	assert.Contains(t, out, "49% of total")
}

func TestRenderHistory(t *testing.T) {
	t.Parallel()

	assert.Contains(t, RenderHistory(nil, 80), EmptyHistoryText)
	out := RenderHistory(sampleRecords(), 100)
	assert.Contains(t, out, "TRANSPORT")
	assert.Contains(t, out, "14.00 kg CO2e")
}

func TestRenderBreakdown(t *testing.T) {
	t.Parallel()

	empty := RenderBreakdown(stats.ComputeStats(nil, time.Now()), 80)
	assert.Contains(t, empty, "No data available yet.")

	records := sampleRecords()
	out := RenderBreakdown(stats.ComputeStats(records, records[0].CreatedAt), 80)
	assert.Contains(t, out, stats.BreakdownDatasetLabel)
	assert.Contains(t, out, "Energy")
}

func TestWriteChartPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteChartPlain(&buf, "TIMELINE", stats.BuildTimelineSeries(nil), 60))
	out := buf.String()
	assert.Contains(t, out, "TIMELINE (sample data)")
	assert.Contains(t, out, "Transport (Mock)")
	assert.Contains(t, out, "Day 7")

	buf.Reset()
	require.NoError(t, WriteChartPlain(&buf, "TIMELINE", stats.BuildTimelineSeries(sampleRecords()), 60))
	out = buf.String()
	assert.NotContains(t, out, "sample data")
	assert.Contains(t, out, "T1")
	assert.Contains(t, out, "E3")
	assert.Contains(t, out, "17.00")
}

func TestBarLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, barLength(0, 10, 20))
	assert.Equal(t, 0, barLength(5, 0, 20))
	assert.Equal(t, 20, barLength(10, 10, 20))
	assert.Equal(t, 10, barLength(5, 10, 20))
	assert.Equal(t, 1, barLength(0.01, 10, 20))
}

func TestDetectOutputMode(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")

	assert.Equal(t, OutputModePlain, DetectOutputMode(true, false, true))
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, true, false))

	if !IsTTY() {
		assert.Equal(t, OutputModePlain, DetectOutputMode(false, false, false))
		assert.Equal(t, OutputModeStyled, DetectOutputMode(true, false, false))
	}

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, OutputModePlain, DetectOutputMode(true, false, false))

	assert.Equal(t, "interactive", OutputModeInteractive.String())
	assert.Positive(t, TerminalWidth())
}
