package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSONFormatProducesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithFormat(FormatJSON), WithOutput(&buf))
	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Fatalf("expected key/value in output, got %q", out)
	}
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithFormat(FormatText), WithOutput(&buf))
	logger.Info("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected message in output, got %q", buf.String())
	}
}

func TestWithLevelFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	logger := New(WithFormat(FormatJSON), WithOutput(&buf), WithLevel(slog.LevelWarn))
	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered out, got %q", buf.String())
	}
	logger.Warn("should appear")
	if buf.Len() == 0 {
		t.Fatal("expected warn to be logged")
	}
}
