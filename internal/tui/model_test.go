package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/kvstore"
)

// brokenKV fails every write.
type brokenKV struct{ *kvstore.MemoryStore }

func (brokenKV) Set(context.Context, string, string) error { return errors.New("disk full") }
func (brokenKV) Remove(context.Context, string) error      { return errors.New("disk full") }

func newStore(t *testing.T) *activity.Store {
	t.Helper()
	return activity.NewStore(kvstore.NewMemoryStore(),
		activity.WithClock(func() time.Time { return time.UnixMilli(1_700_000_000_000) }))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// send applies msg and returns the updated form.
func send(t *testing.T, m LogFormModel, msg tea.Msg) (LogFormModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	form, ok := updated.(LogFormModel)
	require.True(t, ok)
	return form, cmd
}

func typeText(t *testing.T, m LogFormModel, s string) LogFormModel {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, keyRunes(string(r)))
	}
	return m
}

func TestLogFormModel_SubmitThenRedirect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)

	m := NewLogFormModel(ctx, store, 10*time.Millisecond)
	m, _ = send(t, m, key(tea.KeyRight)) // car -> bus
	m, _ = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "100")
	m, _ = send(t, m, key(tea.KeyTab))
	m, _ = send(t, m, key(tea.KeyLeft)) // veg -> meat
	m, _ = send(t, m, key(tea.KeyTab))
	m = typeText(t, m, "2")

	form := m.Form()
	assert.Equal(t, "bus", form.TransportMode)
	assert.Equal(t, "100", form.Distance)
	assert.Equal(t, "meat", form.DietType)
	assert.Equal(t, "2", form.Meals)
	assert.Empty(t, form.Electricity)

	m, cmd := send(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.Equal(t, FormStateSubmitting, m.State())

	m, cmd = send(t, m, cmd())
	assert.Equal(t, FormStateSubmitted, m.State())
	assert.Equal(t, "Total emissions added: 22.00 kg CO2e", m.Message())
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, store.Len())
	assert.Empty(t, m.Form().Distance)

	m, _ = send(t, m, redirectMsg{})
	assert.Equal(t, FormStateDashboard, m.State())
	assert.Equal(t, 2, m.Dashboard().Stats().Count)
	assert.InDelta(t, 22.0, m.Dashboard().Stats().Total, 1e-9)
	assert.Contains(t, m.View(), "CARBON DASHBOARD")
}

func TestLogFormModel_RejectsEmptyForm(t *testing.T) {
	t.Parallel()
	store := newStore(t)

	m := NewLogFormModel(context.Background(), store, time.Millisecond)
	m, cmd := send(t, m, key(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.Equal(t, FormStateEditing, m.State())
	assert.Equal(t, InvalidInputText, m.Message())
	assert.Equal(t, 0, store.Len())
	assert.Contains(t, m.View(), InvalidInputText)

	// A redirect that arrives without a submission is ignored.
	m, _ = send(t, m, redirectMsg{})
	assert.Equal(t, FormStateEditing, m.State())
}

func TestLogFormModel_PersistFailure(t *testing.T) {
	t.Parallel()
	store := activity.NewStore(brokenKV{kvstore.NewMemoryStore()})

	m := NewLogFormModel(context.Background(), store, time.Millisecond)
	for range fieldElectricity {
		m, _ = send(t, m, key(tea.KeyTab))
	}
	m = typeText(t, m, "10")
	m, cmd := send(t, m, key(tea.KeyEnter))
	require.NotNil(t, cmd)

	m, _ = send(t, m, cmd())
	assert.Equal(t, FormStateEditing, m.State())
	assert.Contains(t, m.Message(), "Could not save activities")
	assert.Equal(t, 0, store.Len())
}

func TestLogFormModel_FocusWraps(t *testing.T) {
	t.Parallel()

	m := NewLogFormModel(context.Background(), newStore(t), time.Millisecond)
	m, _ = send(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, fieldSubmit, m.focus)
	m, _ = send(t, m, key(tea.KeyDown))
	assert.Equal(t, fieldMode, m.focus)

	m, cmd := send(t, m, key(tea.KeyEsc))
	assert.Equal(t, FormStateQuitting, m.State())
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

// dashSend applies msg and returns the updated dashboard.
func dashSend(t *testing.T, m DashboardModel, msg tea.Msg) (DashboardModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	d, ok := updated.(DashboardModel)
	require.True(t, ok)
	return d, cmd
}

func TestDashboardModel_Tabs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	_, err := store.Submit(ctx, []activity.Submission{activity.NewTransportSubmission("car", "100")})
	require.NoError(t, err)

	m := NewDashboardModel(ctx, store)
	assert.Equal(t, TabOverview, m.Tab())
	assert.Contains(t, m.View(), "CARBON DASHBOARD")

	m, _ = dashSend(t, m, key(tea.KeyTab))
	assert.Equal(t, TabHistory, m.Tab())
	assert.Contains(t, m.View(), "Car - 100 km")

	m, _ = dashSend(t, m, keyRunes("3"))
	assert.Equal(t, TabTimeline, m.Tab())
	assert.Contains(t, m.View(), "T1")

	m, _ = dashSend(t, m, key(tea.KeyRight))
	assert.Equal(t, TabBreakdown, m.Tab())

	m, _ = dashSend(t, m, key(tea.KeyTab))
	assert.Equal(t, TabOverview, m.Tab())

	m, _ = dashSend(t, m, key(tea.KeyShiftTab))
	assert.Equal(t, TabBreakdown, m.Tab())
}

func TestDashboardModel_ClearFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	_, err := store.Submit(ctx, []activity.Submission{activity.NewEnergySubmission("10")})
	require.NoError(t, err)

	m := NewDashboardModel(ctx, store)

	m, _ = dashSend(t, m, keyRunes("x"))
	assert.Contains(t, m.View(), "Clear ALL activity data?")
	m, cmd := dashSend(t, m, keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Clear cancelled.", m.Status())
	assert.Equal(t, 1, store.Len())

	m, _ = dashSend(t, m, keyRunes("x"))
	m, cmd = dashSend(t, m, keyRunes("y"))
	require.NotNil(t, cmd)
	m, _ = dashSend(t, m, cmd())
	assert.Equal(t, 0, store.Len())

	m, next := dashSend(t, m, m.Init()())
	assert.NotNil(t, next)
	assert.Equal(t, "All activity data cleared.", m.Status())
	assert.Equal(t, 0, m.Stats().Count)

	m, _ = dashSend(t, m, keyRunes("2"))
	assert.Contains(t, m.View(), EmptyHistoryText)
}

func TestDashboardModel_ReloadsOnLogChanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)

	m := NewDashboardModel(ctx, store)
	assert.Equal(t, 0, m.Stats().Count)

	_, err := store.Submit(ctx, []activity.Submission{
		activity.NewTransportSubmission("car", "100"),
		activity.NewEnergySubmission("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Stats().Count, "stats change only when the event is delivered")

	m, cmd := dashSend(t, m, m.Init()())
	require.NotNil(t, cmd)
	assert.Equal(t, 2, m.Stats().Count)
	assert.InDelta(t, 21.0, m.Stats().Total, 1e-9)
	assert.Equal(t, "2 new activities logged.", m.Status())

	require.NoError(t, store.ClearAll(ctx))
	m, _ = dashSend(t, m, cmd())
	assert.Equal(t, 0, m.Stats().Count)
	assert.Equal(t, "All activity data cleared.", m.Status())
}

func TestDashboardModel_WaitForChangeStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())

	m := NewDashboardModel(ctx, newStore(t))
	cancel()
	assert.Nil(t, m.Init()())
}

func TestDashboardModel_ClearFailure(t *testing.T) {
	t.Parallel()

	m := NewDashboardModel(context.Background(), activity.NewStore(brokenKV{kvstore.NewMemoryStore()}))
	m, _ = dashSend(t, m, keyRunes("x"))
	m, cmd := dashSend(t, m, keyRunes("y"))
	require.NotNil(t, cmd)
	m, _ = dashSend(t, m, cmd())
	assert.Contains(t, m.Status(), "Clear failed")
}

func TestDashboardTab_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Breakdown", TabBreakdown.String())
	assert.Equal(t, "DashboardTab(9)", DashboardTab(9).String())
}
