package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return slog.New(NewConsoleHandler(&buf, level)), &buf
}

func TestConsoleHandler_Format(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelInfo)
	logger.Info("page loaded", "url", "http://example.com", "attempt", 2)

	out := buf.String()
	if !strings.Contains(out, "INFO") {
		t.Errorf("output missing level: %q", out)
	}
	if !strings.Contains(out, "page loaded") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "url=http://example.com") || !strings.Contains(out, "attempt=2") {
		t.Errorf("output missing attrs: %q", out)
	}
}

func TestConsoleHandler_LevelFilter(t *testing.T) {
	logger, buf := newTestLogger(slog.LevelWarn)
	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record should pass: %q", out)
	}
}

func TestConsoleHandler_WithAttrs(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := slog.New(NewConsoleHandler(&buf, slog.LevelInfo)).With("case", "douglas adams")
	logger.Info("starting")

	if !strings.Contains(buf.String(), "case=douglas adams") {
		t.Errorf("bound attr missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"INFO":   slog.LevelInfo,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
		"bogus":  slog.LevelInfo,
		"":       slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
