package logging

import (
	"bytes"
	"os"
	"testing"
)

func TestIsTTY_Buffer(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("bytes.Buffer should not be a TTY")
	}
}

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name    string
		noColor bool
		term    string
		isTTY   bool
		want    bool
	}{
		{name: "tty with normal term", term: "xterm-256color", isTTY: true, want: true},
		{name: "not a tty", term: "xterm-256color", isTTY: false, want: false},
		{name: "NO_COLOR set", noColor: true, term: "xterm", isTTY: true, want: false},
		{name: "dumb terminal", term: "dumb", isTTY: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// t.Setenv registers restoration of the original value even
			// when we unset it afterwards.
			t.Setenv("NO_COLOR", "1")
			if !tt.noColor {
				os.Unsetenv("NO_COLOR")
			}
			t.Setenv("TERM", tt.term)

			if got := supportsColor(nil, tt.isTTY); got != tt.want {
				t.Errorf("supportsColor(isTTY=%v) = %v, want %v", tt.isTTY, got, tt.want)
			}
		})
	}
}
