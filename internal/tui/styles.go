package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbontrack/internal/factors"
)

// Color palette (ANSI 256).
const (
	ColorHeader    = lipgloss.Color("86")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("255")
	ColorSubtle    = lipgloss.Color("241")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorBorder    = lipgloss.Color("62")
	ColorSelected  = lipgloss.Color("57")
	ColorTransport = lipgloss.Color("39")
	ColorFood      = lipgloss.Color("208")
	ColorEnergy    = lipgloss.Color("220")
)

// Shared styles.
//
//nolint:gochecknoglobals // Style values are immutable and shared across views.
var (
	HeaderStyle        = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle         = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle         = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)
	SubtleStyle        = lipgloss.NewStyle().Foreground(ColorSubtle).Italic(true)
	InfoStyle          = lipgloss.NewStyle().Foreground(ColorLabel)
	SuccessStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorOK)
	WarningStyle       = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	BoxStyle           = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)
	CardStyle          = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(ColorBorder).Padding(0, 1)
	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(ColorValue).Background(ColorSelected)
	FocusedStyle       = lipgloss.NewStyle().Foreground(ColorHeader)
	BlurredStyle       = lipgloss.NewStyle().Foreground(ColorSubtle)
)

// CategoryColor returns the accent color for a category.
func CategoryColor(c factors.Category) lipgloss.Color {
	switch c {
	case factors.Transport:
		return ColorTransport
	case factors.Food:
		return ColorFood
	case factors.Energy:
		return ColorEnergy
	default:
		return ColorLabel
	}
}

// CategoryStyle renders text in the category's accent color.
func CategoryStyle(c factors.Category) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CategoryColor(c))
}
