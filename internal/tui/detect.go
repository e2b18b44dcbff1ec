package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how a command renders for humans.
type OutputMode int

const (
	// OutputModePlain is unstyled text, for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is lipgloss-styled static output.
	OutputModeStyled
	// OutputModeInteractive runs a Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// defaultTerminalWidth is used when the width cannot be queried.
const defaultTerminalWidth = 80

// DetectOutputMode picks a mode from flags and the environment.
// plain and noColor win over everything; NO_COLOR and TERM=dumb force plain.
// Interactive requires both stdin and stdout to be terminals, unless
// forceColor asks for styled output without a terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	if plain || noColor {
		return OutputModePlain
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if IsTTY() {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return OutputModeInteractive
		}
		return OutputModeStyled
	}
	if forceColor {
		return OutputModeStyled
	}
	return OutputModePlain
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the stdout width in columns, or a fallback of 80.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
