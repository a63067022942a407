package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json", Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["message"] != "shown" || lines[0]["level"] != "warn" {
		t.Fatalf("unexpected entry: %v", lines[0])
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "nonsense", Output: &buf})

	logger.Debug("hidden")
	logger.Info("shown")

	if lines := decodeLines(t, &buf); len(lines) != 1 {
		t.Fatalf("expected only the info line, got %d", len(lines))
	}
}

func TestComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", Output: &buf})

	component := logger.Component("relations")
	component.Debug().Msg("coerced")

	fields := logger.WithFields(map[string]interface{}{"kind": "album"})
	fields.Info().Msg("deleted")

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["component"] != "relations" {
		t.Fatalf("missing component field: %v", lines[0])
	}
	if lines[1]["kind"] != "album" {
		t.Fatalf("missing kind field: %v", lines[1])
	}
}

func TestSeeded(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Output: &buf})

	logger.Seeded("embedded", 2, 3, 9, time.Millisecond, nil)
	logger.Seeded("seed.json", 0, 0, 0, time.Millisecond, errors.New("boom"))

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["level"] != "info" || lines[0]["tracks"] != float64(9) {
		t.Fatalf("unexpected success entry: %v", lines[0])
	}
	if lines[1]["level"] != "error" || lines[1]["error"] != "boom" {
		t.Fatalf("unexpected failure entry: %v", lines[1])
	}
}
