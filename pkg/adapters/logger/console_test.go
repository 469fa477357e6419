package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/framerec/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelWarn, &buf)

	log.Debug("debug line %d", 1)
	log.Info("info line %d", 2)
	log.Warn("warn line %d", 3)
	log.Error("error line %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("messages below warn should be filtered:\n%s", out)
	}
	if !strings.Contains(out, "warn line 3") || !strings.Contains(out, "error line 4") {
		t.Errorf("expected warn and error lines:\n%s", out)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelQuiet, &buf)
	log.Error("error line")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWriter(ports.LevelDebug, &buf)
	child := parent.WithComponent("capture")

	child.Info("frame %d ready", 7)
	parent.Info("no prefix")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "[capture] frame 7 ready" {
		t.Errorf("unexpected component line: %q", lines[0])
	}
	if lines[1] != "no prefix" {
		t.Errorf("parent should not inherit the component: %q", lines[1])
	}
}

func TestConsoleLogger_NoColorForWriter(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(ports.LevelDebug, &buf).Error("plain")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("writer logger should not emit ANSI codes: %q", buf.String())
	}
}

func TestNoopLogger(t *testing.T) {
	log := NewNoop()
	log.Info("ignored")
	if log.WithComponent("x") == nil {
		t.Error("WithComponent should return a logger")
	}
}
