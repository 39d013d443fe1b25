package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	l.Debug("hidden detail")
	l.Info("visible status")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Error("Debug message should be filtered at info level")
	}
	if !strings.Contains(out, "visible status") {
		t.Errorf("Info message missing from output: %q", out)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))

	p.done("Composed 4 slides")

	out := buf.String()
	if !strings.Contains(out, "Composed 4 slides (") {
		t.Errorf("Progress line missing message: %q", out)
	}
	if !strings.Contains(out, ")") {
		t.Errorf("Progress line missing duration: %q", out)
	}
}
