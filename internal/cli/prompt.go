package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user accepted the prompt (typed "y" or "yes")
	Accepted bool
	// Cancelled is true if reading input failed
	Cancelled bool
}

// ConfirmClear asks the user to confirm deleting every logged activity.
//
// The prompt defaults to "No" when the user presses Enter without input.
// Valid inputs: "y", "Y", "yes", "Yes", "YES" for acceptance; anything else
// declines, as does EOF.
func ConfirmClear(writer io.Writer, reader io.Reader, count int) PromptResult {
	fmt.Fprintf(writer, "? This will permanently delete %d logged %s. Continue? [y/N] ",
		count, pluralActivities(count))

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		return PromptResult{Accepted: false}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{Accepted: false}
	}
}

func pluralActivities(n int) string {
	if n == 1 {
		return "activity"
	}
	return "activities"
}
