package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	return &buf
}

func TestWithJobAttachesRunContext(t *testing.T) {
	buf := captureDefault(t)

	WithJob("daily_aggregation", "run-123").Info("job run starting")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if record["job"] != "daily_aggregation" {
		t.Errorf("job = %v, want daily_aggregation", record["job"])
	}
	if record["run_id"] != "run-123" {
		t.Errorf("run_id = %v, want run-123", record["run_id"])
	}
}

func TestWithUserAddsUserID(t *testing.T) {
	buf := captureDefault(t)

	WithUser(slog.Default(), "user-1").Error("daily aggregation failed", "date", "2026-08-29")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if record["user_id"] != "user-1" {
		t.Errorf("user_id = %v, want user-1", record["user_id"])
	}
	if record["date"] != "2026-08-29" {
		t.Errorf("date = %v, want 2026-08-29", record["date"])
	}
}
