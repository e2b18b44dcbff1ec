package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/factors"
	"github.com/rshade/carbontrack/internal/logging"
)

// ActivityStore is the slice of the activity store the log form needs.
type ActivityStore interface {
	ActivityLog
	Submit(ctx context.Context, subs []activity.Submission) ([]activity.Record, error)
}

// FormState is the lifecycle of the log form.
type FormState int

const (
	// FormStateEditing accepts input.
	FormStateEditing FormState = iota
	// FormStateSubmitting waits for the store to persist a batch.
	FormStateSubmitting
	// FormStateSubmitted shows the confirmation until the redirect fires.
	FormStateSubmitted
	// FormStateDashboard hands control to the embedded dashboard.
	FormStateDashboard
	// FormStateQuitting is terminal.
	FormStateQuitting
)

// Form fields in focus order.
const (
	fieldMode = iota
	fieldDistance
	fieldDiet
	fieldMeals
	fieldElectricity
	fieldSubmit
	fieldCount
)

// Text input slots.
const (
	inputDistance = iota
	inputMeals
	inputElectricity
	inputCount
)

const inputCharLimit = 12

// Selector options, in display order.
//
//nolint:gochecknoglobals // Fixed option lists.
var (
	transportModes = []string{factors.KeyCar, factors.KeyBus, factors.KeyTrain, factors.KeyBike}
	dietTypes      = []string{factors.KeyVeg, factors.KeyMixed, factors.KeyMeat}
)

// submitResultMsg carries the outcome of a store submission.
type submitResultMsg struct {
	added []activity.Record
	err   error
}

// redirectMsg fires once the post-submission delay has elapsed.
type redirectMsg struct{}

// LogFormModel is the interactive activity entry form. After a successful
// submission it shows the confirmation, then switches to the dashboard once
// the redirect delay has passed.
type LogFormModel struct {
	ctx   context.Context
	store ActivityStore
	now   func() time.Time

	inputs  [inputCount]textinput.Model
	modeIdx int
	dietIdx int
	focus   int

	state         FormState
	message       string
	messageIsErr  bool
	redirectDelay time.Duration
	dashboard     DashboardModel

	width int
}

// NewLogFormModel builds an empty form bound to store.
func NewLogFormModel(ctx context.Context, store ActivityStore, redirectDelay time.Duration) LogFormModel {
	m := LogFormModel{
		ctx:           ctx,
		store:         store,
		now:           time.Now,
		redirectDelay: redirectDelay,
		width:         dashboardDefaultWidth,
	}

	placeholders := [inputCount]string{"km", "kg", "kWh"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = inputCharLimit
		ti.Width = inputCharLimit
		ti.Prompt = ""
		m.inputs[i] = ti
	}
	return m
}

// State returns the form state.
func (m LogFormModel) State() FormState { return m.state }

// Message returns the current confirmation or error text.
func (m LogFormModel) Message() string { return m.message }

// Dashboard returns the embedded dashboard; valid once State is FormStateDashboard.
func (m LogFormModel) Dashboard() DashboardModel { return m.dashboard }

// Form returns the current field values.
func (m LogFormModel) Form() activity.Form {
	return activity.Form{
		TransportMode: transportModes[m.modeIdx],
		Distance:      m.inputs[inputDistance].Value(),
		DietType:      dietTypes[m.dietIdx],
		Meals:         m.inputs[inputMeals].Value(),
		Electricity:   m.inputs[inputElectricity].Value(),
	}
}

// Init implements tea.Model.
func (m LogFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m LogFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == FormStateDashboard {
		updated, cmd := m.dashboard.Update(msg)
		m.dashboard = updated.(DashboardModel)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case redirectMsg:
		if m.state != FormStateSubmitted {
			return m, nil
		}
		m.dashboard = NewDashboardModel(m.ctx, m.store).WithClock(m.now)
		m.dashboard.width = m.width
		m.state = FormStateDashboard
		return m, m.dashboard.Init()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m LogFormModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.state = FormStateQuitting
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		return m.moveFocus(1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m.moveFocus(-1)
	case tea.KeyCtrlS:
		return m.submit()
	case tea.KeyEnter:
		if m.focus == fieldSubmit || m.focus == fieldElectricity {
			return m.submit()
		}
		return m.moveFocus(1)
	case tea.KeyLeft, tea.KeyRight:
		if m.cycleSelector(msg.Type == tea.KeyRight) {
			return m, nil
		}
	}

	if slot, ok := inputSlot(m.focus); ok {
		var cmd tea.Cmd
		m.inputs[slot], cmd = m.inputs[slot].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m LogFormModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.focus = (m.focus + delta + fieldCount) % fieldCount

	var cmd tea.Cmd
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	if slot, ok := inputSlot(m.focus); ok {
		cmd = m.inputs[slot].Focus()
	}
	return m, cmd
}

// cycleSelector advances the focused selector, reporting whether one was focused.
func (m *LogFormModel) cycleSelector(forward bool) bool {
	step := -1
	if forward {
		step = 1
	}
	switch m.focus {
	case fieldMode:
		m.modeIdx = (m.modeIdx + step + len(transportModes)) % len(transportModes)
		return true
	case fieldDiet:
		m.dietIdx = (m.dietIdx + step + len(dietTypes)) % len(dietTypes)
		return true
	default:
		return false
	}
}

func inputSlot(field int) (int, bool) {
	switch field {
	case fieldDistance:
		return inputDistance, true
	case fieldMeals:
		return inputMeals, true
	case fieldElectricity:
		return inputElectricity, true
	default:
		return 0, false
	}
}

func (m LogFormModel) submit() (tea.Model, tea.Cmd) {
	if m.state != FormStateEditing {
		return m, nil
	}

	subs, err := m.Form().Submissions()
	if err != nil {
		m.message = InvalidInputText
		m.messageIsErr = true
		return m, nil
	}

	m.state = FormStateSubmitting
	ctx := m.ctx
	store := m.store
	return m, func() tea.Msg {
		added, submitErr := store.Submit(ctx, subs)
		return submitResultMsg{added: added, err: submitErr}
	}
}

func (m LogFormModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = FormStateEditing
		m.messageIsErr = true
		if errors.Is(msg.err, activity.ErrNoActivities) {
			m.message = InvalidInputText
		} else {
			m.message = "Could not save activities: " + msg.err.Error()
			logger := logging.FromContext(m.ctx)
			logger.Error().
				Str("component", "tui").
				Str("operation", "submit").
				Err(msg.err).
				Msg("failed to save activities")
		}
		return m, nil
	}

	m.state = FormStateSubmitted
	m.message = SubmittedMessage(msg.added)
	m.messageIsErr = false
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}

	return m, tea.Tick(m.redirectDelay, func(time.Time) tea.Msg {
		return redirectMsg{}
	})
}

// View implements tea.Model.
func (m LogFormModel) View() string {
	switch m.state {
	case FormStateQuitting:
		return ""
	case FormStateDashboard:
		return m.dashboard.View()
	case FormStateEditing, FormStateSubmitting, FormStateSubmitted:
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("LOG ACTIVITIES"))
	b.WriteString("\n\n")

	b.WriteString(CategoryStyle(factors.Transport).Render("Transport"))
	b.WriteString("\n")
	b.WriteString(m.renderSelector("Mode", transportModes, m.modeIdx, fieldMode))
	b.WriteString(m.renderInput("Distance (km)", inputDistance, fieldDistance))

	b.WriteString(CategoryStyle(factors.Food).Render("Food"))
	b.WriteString("\n")
	b.WriteString(m.renderSelector("Diet", dietTypes, m.dietIdx, fieldDiet))
	b.WriteString(m.renderInput("Amount (kg)", inputMeals, fieldMeals))

	b.WriteString(CategoryStyle(factors.Energy).Render("Energy"))
	b.WriteString("\n")
	b.WriteString(m.renderInput("Electricity (kWh)", inputElectricity, fieldElectricity))

	b.WriteString("\n")
	button := "[ Submit ]"
	if m.focus == fieldSubmit {
		b.WriteString(TableSelectedStyle.Render(button))
	} else {
		b.WriteString(BlurredStyle.Render(button))
	}
	b.WriteString("\n\n")

	switch {
	case m.state == FormStateSubmitting:
		b.WriteString(InfoStyle.Render("Saving..."))
	case m.message != "" && m.messageIsErr:
		b.WriteString(CriticalStyle.Render(m.message))
	case m.message != "":
		b.WriteString(SuccessStyle.Render(m.message))
	}
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("tab: next field • ←/→: change option • enter/ctrl+s: submit • esc: quit"))

	return BoxStyle.Width(m.width - borderPadding).Render(b.String())
}

func (m LogFormModel) renderSelector(label string, options []string, selected, field int) string {
	style := BlurredStyle
	if m.focus == field {
		style = FocusedStyle
	}
	parts := make([]string, len(options))
	for i, opt := range options {
		if i == selected {
			parts[i] = ValueStyle.Render("<" + opt + ">")
		} else {
			parts[i] = LabelStyle.Render(opt)
		}
	}
	return "  " + style.Render(label+": ") + strings.Join(parts, " ") + "\n"
}

func (m LogFormModel) renderInput(label string, slot, field int) string {
	style := BlurredStyle
	if m.focus == field {
		style = FocusedStyle
	}
	return "  " + style.Render(label+": ") + m.inputs[slot].View() + "\n"
}
