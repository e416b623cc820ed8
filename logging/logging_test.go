package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, tag string, min Level) *Logger {
	return &Logger{std: log.New(buf, "", 0), min: min, tag: tag}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":       Debug,
		"info":        Info,
		"warn":        Warn,
		"error":       Error,
		"":            Info,
		"unknown":     Info,
		"INFO":        Info, // unrecognized casing falls back to Info
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{Debug: "DEBUG", Info: "INFO", Warn: "WARN", Error: "ERROR"}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %s, want %s", level, got, want)
		}
	}
}

func TestLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := newTestLogger(&buf, "test", Warn)

	lg.Debugf("debug message")
	lg.Infof("info message")
	if buf.Len() != 0 {
		t.Errorf("messages below the minimum level should be filtered, got %q", buf.String())
	}

	lg.Warnf("warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Errorf("Warnf at the minimum level should be logged, got %q", buf.String())
	}
}

func TestLoggerIncludesTagAndLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := newTestLogger(&buf, "server", Debug)
	lg.Errorf("something broke: %d", 42)

	out := buf.String()
	if !strings.Contains(out, "[ERROR]") {
		t.Errorf("log line missing level tag, got %q", out)
	}
	if !strings.Contains(out, "server") {
		t.Errorf("log line missing role tag, got %q", out)
	}
	if !strings.Contains(out, "something broke: 42") {
		t.Errorf("log line missing formatted message, got %q", out)
	}
}

func TestWithAppendsTagSuffix(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, "server", Debug)
	child := base.With("session-1")
	child.Infof("hello")

	if !strings.Contains(buf.String(), "server.session-1") {
		t.Errorf("With should append a dotted tag suffix, got %q", buf.String())
	}
}
