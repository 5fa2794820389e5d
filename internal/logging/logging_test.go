package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want hclog.Level
	}{
		{name: "default", opts: Options{}, want: hclog.Info},
		{name: "verbose", opts: Options{Verbose: true}, want: hclog.Debug},
		{name: "quiet", opts: Options{Quiet: true}, want: hclog.Error},
		{name: "quiet wins", opts: Options{Verbose: true, Quiet: true}, want: hclog.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})

	logger.Debug("hidden")
	logger.Info("extracted ramp", "colours", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug message logged at info level: %q", out)
	}
	if !strings.Contains(out, "extracted ramp") || !strings.Contains(out, "colours=7") {
		t.Errorf("Unexpected log output: %q", out)
	}
	if !strings.Contains(out, Name) {
		t.Errorf("Logger name missing: %q", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsError() {
		t.Error("Discard logger should not be enabled at any level")
	}
}
