package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("terminal gone")
}

func TestConfirmClear(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  PromptResult
	}{
		{"y", "y\n", PromptResult{Accepted: true}},
		{"YES with spaces", "  YES \n", PromptResult{Accepted: true}},
		{"n", "n\n", PromptResult{}},
		{"empty defaults to no", "\n", PromptResult{}},
		{"anything else", "sure\n", PromptResult{}},
		{"EOF", "", PromptResult{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := ConfirmClear(&out, strings.NewReader(tt.input), 3)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "delete 3 logged activities")
			assert.Contains(t, out.String(), "[y/N]")
		})
	}

	var out bytes.Buffer
	assert.Equal(t, PromptResult{Cancelled: true}, ConfirmClear(&out, failingReader{}, 1))
	assert.Contains(t, out.String(), "1 logged activity.")
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat("table"))
	assert.NoError(t, validateOutputFormat("json"))
	assert.Error(t, validateOutputFormat("yaml"))
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	err := &ExitError{Code: 2, Err: inner}
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "exit status 3", (&ExitError{Code: 3}).Error())
}
