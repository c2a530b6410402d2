package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode terminal": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii fallback": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestSpinner_NonTTY(t *testing.T) {
	tests := map[string]struct {
		fnErr error
		want  string
	}{
		"success": {
			want: "Reading history...\n[OK] Reading history\n",
		},
		"failure": {
			fnErr: errors.New("boom"),
			want:  "Reading history...\n[FAIL] Reading history\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			sp := NewSpinner(&buf, TerminalCapabilities{})

			err := sp.Run("Reading history", func() error { return tt.fnErr })

			assert.Equal(t, tt.fnErr, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, TerminalCapabilities{})

	sp.Success()

	assert.Empty(t, buf.String())
}
