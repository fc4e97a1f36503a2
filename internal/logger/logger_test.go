package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerWritesJSONEntry(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelDebug, &buf)

	log.Warn("unable to load detail page", Fields{"url": "https://example.com/d1"})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Level != "WARN" {
		t.Errorf("Level = %q", entry.Level)
	}
	if entry.Message != "unable to load detail page" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Fields["url"] != "https://example.com/d1" {
		t.Errorf("Fields = %v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("expected a timestamp")
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelWarn, &buf)

	log.Debug("debug message", nil)
	log.Info("info message", nil)
	if buf.Len() != 0 {
		t.Errorf("messages below the minimum level should be discarded, got %q", buf.String())
	}

	log.Warn("warn message", nil)
	log.Error("error message", nil, errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d", len(lines))
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Error != "boom" {
		t.Errorf("Error = %q", entry.Error)
	}
}
