package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestThresholdsHolderDefaults(t *testing.T) {
	h := NewThresholdsHolder()

	th := h.Get()
	if th.MoodHigh != 70 || th.MoodLow != 30 {
		t.Errorf("unexpected default mood thresholds: %+v", th)
	}
}

func TestThresholdsHolderLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yaml")

	yaml := "mood_high: 80\nmood_low: 25\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	h := NewThresholdsHolder()
	if err := h.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	th := h.Get()
	if th.MoodHigh != 80 {
		t.Errorf("MoodHigh = %v, want 80", th.MoodHigh)
	}
	if th.MoodLow != 25 {
		t.Errorf("MoodLow = %v, want 25", th.MoodLow)
	}
	// Unset fields fall back to defaults.
	if th.StressHigh != 70 {
		t.Errorf("StressHigh = %v, want default 70", th.StressHigh)
	}
}

func TestThresholdsHolderMissingFileKeepsDefaults(t *testing.T) {
	h := NewThresholdsHolder()
	if err := h.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}

	if th := h.Get(); th.MoodHigh != 70 {
		t.Errorf("defaults lost after missing-file load: %+v", th)
	}
}

func TestThresholdsHolderRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thresholds.yaml")
	if err := os.WriteFile(path, []byte("mood_high: [not a number"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	h := NewThresholdsHolder()
	if err := h.LoadFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if th := h.Get(); th.MoodHigh != 70 {
		t.Errorf("bad load should not clobber current thresholds: %+v", th)
	}
}
