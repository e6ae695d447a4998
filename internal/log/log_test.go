package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("low-severity messages leaked through: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("high-severity messages missing: %q", out)
	}
}

func TestPrefixAndFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf, Prefix: "quill"})

	l.Info("hello %s", "world")

	out := buf.String()
	if !strings.Contains(out, "[INFO] quill: hello world") {
		t.Errorf("unexpected line: %q", out)
	}
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf})

	l.WithField("op", "insert").WithField("pos", 5).Info("executed")

	out := buf.String()
	if !strings.Contains(out, "{op=insert, pos=5}") {
		t.Errorf("fields missing or unordered: %q", out)
	}

	// Parent logger is unaffected.
	buf.Reset()
	l.Info("plain")
	if strings.Contains(buf.String(), "op=") {
		t.Errorf("field leaked to parent: %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf}).WithComponent("editor")

	l.Info("ready")
	if !strings.Contains(buf.String(), "component=editor") {
		t.Errorf("component field missing: %q", buf.String())
	}
}

func TestSetLevelReachesDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: LevelError, Output: &buf})
	derived := root.WithComponent("editor")

	derived.Info("before")
	root.SetLevel(LevelDebug)
	derived.Info("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("message leaked before level change: %q", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("level change did not reach derived logger: %q", out)
	}
}

func TestNopDiscards(t *testing.T) {
	// Must not panic or write anywhere.
	Nop.Debug("x")
	Nop.Error("y")
	Nop.WithField("a", 1).Info("z")
}
