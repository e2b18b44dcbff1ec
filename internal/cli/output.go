package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/tui"
)

// ExitError asks main to exit with Code. The message has already been shown
// to the user, so main does not print it again.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// jsonOutput reports whether the effective output format is JSON.
func jsonOutput() bool {
	return config.GetDefaultOutputFormat() == config.FormatJSON
}

// humanOutputMode picks the rendering for table output.
// JSON output bypasses this entirely.
func humanOutputMode() tui.OutputMode {
	return tui.DetectOutputMode(false, false, false)
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}
