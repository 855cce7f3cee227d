package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Output: &buf})

	log.Info().Msg("dropped")
	log.Warn().Int64("account_id", 7).Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["message"] != "kept" || entry["service"] != "panelledger" || entry["account_id"] != float64(7) {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("expected timestamp in %v", entry)
	}
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "console", Output: &buf})

	log.Debug().Msg("hello console")

	if !strings.Contains(buf.String(), "hello console") {
		t.Fatalf("expected message in console output, got %q", buf.String())
	}
	if json.Valid(buf.Bytes()) {
		t.Fatalf("expected non-JSON console output")
	}
}

func TestWithRequest(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf})

	ctx := WithRequest(context.Background(), base, "01HREQ", 42)
	FromContext(ctx).Info().Msg("scoped")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"01HREQ"`) || !strings.Contains(out, `"user_id":42`) {
		t.Fatalf("expected request fields, got %q", out)
	}

	// A bare context yields a disabled logger rather than nil.
	if FromContext(context.Background()) == nil {
		t.Fatal("expected non-nil logger")
	}
}
