package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/logging"
	"github.com/rshade/carbontrack/internal/stats"
)

// ActivityLog is the slice of the activity store the dashboard needs.
type ActivityLog interface {
	Records() []activity.Record
	ClearAll(ctx context.Context) error
	Subscribe(l activity.Listener)
}

// DashboardTab identifies a dashboard page.
type DashboardTab int

const (
	// TabOverview shows the summary cards.
	TabOverview DashboardTab = iota
	// TabHistory shows every record in a table.
	TabHistory
	// TabTimeline charts per-entry emissions.
	TabTimeline
	// TabBreakdown charts per-category totals.
	TabBreakdown
)

const dashboardTabCount = 4

// String returns the tab title.
func (t DashboardTab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabHistory:
		return "History"
	case TabTimeline:
		return "Timeline"
	case TabBreakdown:
		return "Breakdown"
	default:
		return fmt.Sprintf("DashboardTab(%d)", int(t))
	}
}

// Default dimensions for the dashboard model.
const (
	dashboardDefaultWidth  = 100
	dashboardDefaultHeight = 24
	dashboardChromeHeight  = 6
)

// changeBufferSize is how many log changes may queue before new ones are
// dropped. Every change triggers a full re-read, so a dropped event loses
// only its status line.
const changeBufferSize = 16

// dataClearedMsg reports the outcome of a clear request.
type dataClearedMsg struct {
	err error
}

// logChangedMsg carries a mutation observed on the activity log.
type logChangedMsg struct {
	event activity.ChangeEvent
}

// DashboardModel is the Bubble Tea model for the interactive dashboard.
type DashboardModel struct {
	ctx     context.Context
	log     ActivityLog
	now     func() time.Time
	changes chan activity.ChangeEvent

	records []activity.Record
	stats   stats.DashboardStats
	history table.Model

	tab          DashboardTab
	confirmClear bool
	status       string
	quitting     bool

	width  int
	height int
}

// NewDashboardModel builds a dashboard over log and subscribes to its changes.
// Views are rebuilt whenever the log is appended to or cleared, once Init's
// command is running.
func NewDashboardModel(ctx context.Context, log ActivityLog) DashboardModel {
	m := DashboardModel{
		ctx:     ctx,
		log:     log,
		now:     time.Now,
		changes: make(chan activity.ChangeEvent, changeBufferSize),
		width:   dashboardDefaultWidth,
		height:  dashboardDefaultHeight,
	}

	changes := m.changes
	log.Subscribe(func(evt activity.ChangeEvent) {
		select {
		case changes <- evt:
		default:
		}
	})

	m.refresh()
	return m
}

// WithClock replaces the clock used for days-tracked.
func (m DashboardModel) WithClock(now func() time.Time) DashboardModel {
	m.now = now
	m.refresh()
	return m
}

// Tab returns the active tab.
func (m DashboardModel) Tab() DashboardTab { return m.tab }

// Stats returns the statistics currently displayed.
func (m DashboardModel) Stats() stats.DashboardStats { return m.stats }

// Status returns the last status line.
func (m DashboardModel) Status() string { return m.status }

// refresh re-reads the log and recomputes everything derived from it.
func (m *DashboardModel) refresh() {
	m.records = m.log.Records()
	m.stats = stats.ComputeStats(m.records, m.now())
	m.history = m.buildHistoryTable()
}

func (m *DashboardModel) buildHistoryTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},            //nolint:mnd // Column width.
		{Title: "Category", Width: 10},    //nolint:mnd // Column width.
		{Title: "Description", Width: 30}, //nolint:mnd // Column width.
		{Title: "kg CO2e", Width: 10},     //nolint:mnd // Column width.
		{Title: "Logged", Width: 16},      //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strings.ToUpper(r.Category.String()),
			r.Description,
			stats.FormatKg(r.CO2e),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-dashboardChromeHeight, 1)),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks until the log reports a change or ctx is done.
func (m DashboardModel) waitForChange() tea.Cmd {
	ctx := m.ctx
	changes := m.changes
	return func() tea.Msg {
		select {
		case evt := <-changes:
			return logChangedMsg{event: evt}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history = m.buildHistoryTable()
		return m, nil

	case dataClearedMsg:
		if msg.err != nil {
			m.status = "Clear failed: " + msg.err.Error()
		}
		return m, nil

	case logChangedMsg:
		m.refresh()
		switch msg.event.Kind {
		case activity.ChangeCleared:
			m.status = "All activity data cleared."
		case activity.ChangeAppended:
			m.status = fmt.Sprintf("%d new %s logged.", len(msg.event.Appended), activityNoun(len(msg.event.Appended)))
		}
		return m, m.waitForChange()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

//nolint:exhaustive // Only handling relevant key types for dashboard navigation.
func (m DashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmClear {
		return m.handleConfirmKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyTab, tea.KeyRight:
		m.tab = (m.tab + 1) % dashboardTabCount
		return m, nil
	case tea.KeyShiftTab, tea.KeyLeft:
		m.tab = (m.tab + dashboardTabCount - 1) % dashboardTabCount
		return m, nil
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "1", "2", "3", "4":
			m.tab = DashboardTab(msg.Runes[0] - '1')
			return m, nil
		case "r":
			m.refresh()
			m.status = "Refreshed."
			return m, nil
		case "x":
			m.confirmClear = true
			return m, nil
		}
	}

	if m.tab == TabHistory {
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m DashboardModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmClear = false
	if msg.Type != tea.KeyRunes || (string(msg.Runes) != "y" && string(msg.Runes) != "Y") {
		m.status = "Clear cancelled."
		return m, nil
	}

	ctx := m.ctx
	log := m.log
	return m, func() tea.Msg {
		err := log.ClearAll(ctx)
		if err != nil {
			logger := logging.FromContext(ctx)
			logger.Error().
				Str("component", "tui").
				Str("operation", "clear_all").
				Err(err).
				Msg("failed to clear activity log")
		}
		return dataClearedMsg{err: err}
	}
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.tab {
	case TabOverview:
		b.WriteString(RenderDashboard(m.stats, m.width))
	case TabHistory:
		if len(m.records) == 0 {
			b.WriteString(RenderHistory(nil, m.width))
		} else {
			b.WriteString(BoxStyle.Render(m.history.View()))
		}
	case TabTimeline:
		b.WriteString(RenderChart("TIMELINE", stats.BuildTimelineSeries(m.records), m.width))
	case TabBreakdown:
		b.WriteString(RenderBreakdown(m.stats, m.width))
	}

	b.WriteString("\n")
	if m.confirmClear {
		b.WriteString(WarningStyle.Render("Clear ALL activity data? This cannot be undone. (y/N)"))
	} else if m.status != "" {
		b.WriteString(InfoStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("tab/1-4: switch view • r: refresh • x: clear data • q: quit"))
	return b.String()
}

func activityNoun(n int) string {
	if n == 1 {
		return "activity"
	}
	return "activities"
}

func (m DashboardModel) renderTabs() string {
	parts := make([]string, 0, dashboardTabCount)
	for t := range DashboardTab(dashboardTabCount) {
		label := fmt.Sprintf(" %d %s ", int(t)+1, t)
		if t == m.tab {
			parts = append(parts, TableSelectedStyle.Render(label))
		} else {
			parts = append(parts, LabelStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}
