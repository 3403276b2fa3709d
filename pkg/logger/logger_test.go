package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"hollowbot/pkg/config"
)

func unsetLoggingEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOLLOWBOT_LOG_FORMAT", "")
	t.Setenv("HOLLOWBOT_LOG_LEVEL", "")
}

func TestLoggerJSONEntryShape(t *testing.T) {
	unsetLoggingEnv(t)

	var out bytes.Buffer
	log, err := newWithWriter(config.LoggingConfig{Format: "json", Level: "info"}, &out)
	if err != nil {
		t.Fatalf("newWithWriter error: %v", err)
	}

	log.With("component", "dispatch").Info("Executing command", "verb", "mute", "ok", true)

	line := strings.TrimSpace(out.String())
	if line == "" {
		t.Fatal("expected log output")
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("unmarshal log entry: %v", err)
	}

	if entry.Level != "info" {
		t.Fatalf("level = %q, want %q", entry.Level, "info")
	}
	if entry.Message != "Executing command" {
		t.Fatalf("message = %q, want %q", entry.Message, "Executing command")
	}
	if entry.Component != "dispatch" {
		t.Fatalf("component = %q, want %q", entry.Component, "dispatch")
	}
	if entry.Timestamp == "" {
		t.Fatal("expected timestamp")
	}
	if got := entry.Fields["verb"]; got != "mute" {
		t.Fatalf("fields.verb = %v, want %q", got, "mute")
	}
	if got := entry.Fields["ok"]; got != true {
		t.Fatalf("fields.ok = %v, want true", got)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	unsetLoggingEnv(t)

	var out bytes.Buffer
	log, err := newWithWriter(config.LoggingConfig{Format: "json", Level: "error"}, &out)
	if err != nil {
		t.Fatalf("newWithWriter error: %v", err)
	}

	log.Info("Ignored")
	if got := strings.TrimSpace(out.String()); got != "" {
		t.Fatalf("expected no output for info, got %q", got)
	}

	log.Error("Kept")
	if got := strings.TrimSpace(out.String()); got == "" {
		t.Fatal("expected output for error")
	}
}

func TestLoggerEnvironmentOverridesFormat(t *testing.T) {
	unsetLoggingEnv(t)
	t.Setenv("HOLLOWBOT_LOG_FORMAT", "nonsense")

	if _, err := newWithWriter(config.LoggingConfig{Format: "json"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unsupported format override")
	}
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	unsetLoggingEnv(t)

	if _, err := newWithWriter(config.LoggingConfig{Format: "json", Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
