package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{" info ", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "keycalc"})

	log.WithFields(map[string]any{"b": 2, "a": 1}).Info("value %d", 42)

	line := buf.String()
	if !strings.Contains(line, "[INFO] keycalc: value 42 {a=1, b=2}") {
		t.Errorf("log line = %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("log line should end with a newline")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")

	out := buf.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("messages below warn written: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn") || !strings.Contains(out, "[ERROR] error") {
		t.Errorf("warn/error missing: %q", out)
	}

	buf.Reset()
	log.SetLevel(LogLevelDebug)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel did not lower the threshold")
	}
	if log.Level() != LogLevelDebug {
		t.Errorf("Level() = %v, want DEBUG", log.Level())
	}
}

func TestLogger_DerivedLoggersAreIndependent(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	engineLog := base.WithComponent("engine")

	base.Info("plain")
	engineLog.Info("tagged")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if strings.Contains(lines[0], "component=") {
		t.Errorf("base logger gained a field: %q", lines[0])
	}
	if !strings.Contains(lines[1], "{component=engine}") {
		t.Errorf("derived line = %q", lines[1])
	}
}

func TestNewSessionLogger(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.New()
	log := NewSessionLogger(LoggerConfig{Output: &buf}, id)

	log.Info("hello")
	if !strings.Contains(buf.String(), "session="+id.String()) {
		t.Errorf("log line = %q, want session field", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Info("discarded")
	NullLogger.SetLevel(LogLevelDebug)
	derived := NullLogger.WithComponent("x")
	derived.Error("also discarded")
}

func TestOpenLogFile(t *testing.T) {
	path := t.TempDir() + "/logs/keycalc.log"
	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile() error = %v", err)
	}
	defer f.Close()

	log := NewLogger(LoggerConfig{Output: f})
	log.Info("to file")
}
