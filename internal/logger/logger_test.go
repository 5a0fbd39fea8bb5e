package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level LogLevel, format LogFormat) *Logger {
	return New(Config{
		Level:     level,
		Format:    format,
		Output:    buf,
		Component: "test",
	})
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level LogLevel
		want  int
	}{
		{"debug shows everything", DEBUG, 4},
		{"info hides debug", INFO, 3},
		{"warn hides info", WARN, 2},
		{"error only", ERROR, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newTestLogger(&buf, tt.level, JSONFormat)

			l.Debug("debug message")
			l.Info("info message")
			l.Warn("warn message")
			l.Error("error message", nil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != tt.want {
				t.Errorf("Expected %d log lines, got %d", tt.want, len(lines))
			}
			for i, line := range lines {
				var entry LogEntry
				if err := json.Unmarshal([]byte(line), &entry); err != nil {
					t.Errorf("Line %d is not valid JSON: %v", i+1, err)
				}
			}
		})
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "fetchers"})

	l.Info("csv loaded", map[string]interface{}{
		"path": "data/Ex5_TV_energy.csv",
		"rows": 42,
	})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %s", entry.Level)
	}
	if entry.Component != "fetchers" {
		t.Errorf("Expected component 'fetchers', got %s", entry.Component)
	}
	if entry.Fields["path"] != "data/Ex5_TV_energy.csv" {
		t.Errorf("Unexpected path field %v", entry.Fields["path"])
	}
	if entry.Fields["rows"] != float64(42) {
		t.Errorf("Expected rows=42, got %v", entry.Fields["rows"])
	}
}

func TestTextFormatSortsFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, INFO, TextFormat)

	l.Info("render finished", map[string]interface{}{"width": 960, "chart": "bar"})

	out := buf.String()
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected component tag in %q", out)
	}
	if !strings.Contains(out, "fields={chart=bar, width=960}") {
		t.Errorf("Expected sorted fields in %q", out)
	}
}

func TestWithFieldsMergesIntoEntries(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, INFO, JSONFormat)

	child := base.WithFields(map[string]interface{}{"chart": "donut"})
	child.Info("placeholder drawn", map[string]interface{}{"reason": "empty"})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Fields["chart"] != "donut" || entry.Fields["reason"] != "empty" {
		t.Errorf("Expected merged fields, got %v", entry.Fields)
	}

	buf.Reset()
	base.Info("no fields")
	if strings.Contains(buf.String(), "donut") {
		t.Error("Parent logger must not inherit child fields")
	}
}

func TestChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, INFO, JSONFormat)
	child := base.WithComponent("charts")

	base.SetLevel(ERROR)
	child.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("Expected child to follow parent level, got %q", buf.String())
	}
	if child.Enabled(WARN) {
		t.Error("WARN should be disabled at ERROR level")
	}
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, ERROR, JSONFormat)

	l.Error("fetch failed", errors.New("status 404"), map[string]interface{}{"chart": "line"})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Error != "status 404" {
		t.Errorf("Expected error 'status 404', got %s", entry.Error)
	}
}

func TestGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	SetGlobalLogger(newTestLogger(&buf, INFO, JSONFormat))
	Info("global info message")
	Warnf("global %s message", "warn")
	Component("server").Info("component message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 log lines, got %d", len(lines))
	}
	var last LogEntry
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("Failed to parse JSON line: %v", err)
	}
	if last.Component != "server" {
		t.Errorf("Expected component 'server', got %s", last.Component)
	}
}

func TestConfigure(t *testing.T) {
	var buf bytes.Buffer
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	SetGlobalLogger(newTestLogger(&buf, INFO, JSONFormat))
	Configure("warning", "TEXT")
	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("INFO should be filtered after Configure(warning)")
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("Expected text output, got %q", out)
	}

	Configure("bogus", "")
	if !GetGlobalLogger().Enabled(WARN) || GetGlobalLogger().Enabled(INFO) {
		t.Error("Unknown values must leave the level untouched")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{FATAL, "FATAL"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if tt.level.String() != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, tt.level.String())
		}
	}
}

func BenchmarkLevelFiltering(b *testing.B) {
	var buf bytes.Buffer
	l := New(Config{Level: WARN, Format: JSONFormat, Output: &buf})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Debug("debug message that should be filtered")
	}
}
