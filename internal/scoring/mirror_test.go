package scoring

import (
	"strings"
	"testing"

	"auralog/internal/models"
)

func TestMoodScoreBaseline(t *testing.T) {
	if got := MoodScore(nil); got != 50 {
		t.Errorf("MoodScore(nil) = %v, want baseline 50", got)
	}
}

func TestMoodScoreClamped(t *testing.T) {
	if got := MoodScore([]float64{1, 1, 1}); got != 100 {
		t.Errorf("all-positive sentiment should cap at 100, got %v", got)
	}
	if got := MoodScore([]float64{-1, -1}); got != 0 {
		t.Errorf("all-negative sentiment should floor at 0, got %v", got)
	}
}

func TestStressIndexTermsIndependentlyCapped(t *testing.T) {
	// Each term saturates on its own: 30 + 40 + 30 + 30 = 130, clamped to 100.
	if got := StressIndex(1000, 10000, 1000); got != 100 {
		t.Errorf("saturated StressIndex = %v, want 100", got)
	}

	// Notification term caps at 40 regardless of count.
	if a, b := StressIndex(20, 0, 0), StressIndex(2000, 0, 0); a != b {
		t.Errorf("notification term not capped: %v vs %v", a, b)
	}
	if got := StressIndex(20, 0, 0); got != 70 {
		t.Errorf("StressIndex(20, 0, 0) = %v, want 70", got)
	}

	// Screen term caps at 30.
	if got := StressIndex(0, 300, 0); got != 60 {
		t.Errorf("StressIndex(0, 300, 0) = %v, want 60", got)
	}
	if got := StressIndex(0, 100000, 0); got != 60 {
		t.Errorf("screen term not capped: %v, want 60", got)
	}

	// Friction term caps at 30.
	if got := StressIndex(0, 0, 10); got != 60 {
		t.Errorf("StressIndex(0, 0, 10) = %v, want 60", got)
	}
	if got := StressIndex(0, 0, 10000); got != 60 {
		t.Errorf("friction term not capped: %v, want 60", got)
	}

	// Baseline only.
	if got := StressIndex(0, 0, 0); got != 30 {
		t.Errorf("StressIndex(0, 0, 0) = %v, want baseline 30", got)
	}
}

func TestComposeMirrorAllPositiveVoiceDay(t *testing.T) {
	// Ten all-positive voice events and zero device activity: mood caps at
	// 100, stress stays at the 30 baseline, and the high-mood highlight is
	// present.
	in := MirrorInputs{
		Sentiments: []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
	got := ComposeMirror(in, DefaultThresholds())

	if got.MoodScore != 100 {
		t.Errorf("MoodScore = %v, want 100", got.MoodScore)
	}
	if got.StressIndex != 30 {
		t.Errorf("StressIndex = %v, want 30", got.StressIndex)
	}
	if got.EnergyLevel != 70 {
		t.Errorf("EnergyLevel = %v, want 70", got.EnergyLevel)
	}
	if got.SocialConnection != 100 {
		t.Errorf("SocialConnection = %v, want 100", got.SocialConnection)
	}
	if got.PurposeAlignment != 85 {
		t.Errorf("PurposeAlignment = %v, want 85", got.PurposeAlignment)
	}

	found := false
	for _, h := range got.Highlights {
		if strings.Contains(h, "bright") {
			found = true
		}
	}
	if !found {
		t.Errorf("high-mood highlight missing from %v", got.Highlights)
	}
}

func TestHighlightsOrderAndBands(t *testing.T) {
	th := DefaultThresholds()

	// High mood, high stress, off-rhythm: three insights in mood, stress,
	// rhythm order.
	insights := Highlights(80, 80, models.RhythmOffRhythm, th)
	if len(insights) != 3 {
		t.Fatalf("expected 3 insights, got %d: %v", len(insights), insights)
	}
	if !strings.Contains(insights[0], "bright") {
		t.Errorf("first insight should be the mood band, got %q", insights[0])
	}
	if !strings.Contains(insights[1], "Stress") {
		t.Errorf("second insight should be the stress band, got %q", insights[1])
	}
	if !strings.Contains(insights[2], "rhythm") {
		t.Errorf("third insight should be the rhythm band, got %q", insights[2])
	}

	// Mid-band values with a stable rhythm produce nothing.
	if got := Highlights(50, 50, models.RhythmStable, th); len(got) != 0 {
		t.Errorf("mid-band day should have no highlights, got %v", got)
	}

	// At most one insight per band.
	if got := Highlights(20, 20, models.RhythmOverstimulated, th); len(got) != 3 {
		t.Errorf("expected one insight per band, got %v", got)
	}
}

func TestSocialConnectionCap(t *testing.T) {
	if got := SocialConnection(3); got != 30 {
		t.Errorf("SocialConnection(3) = %v, want 30", got)
	}
	if got := SocialConnection(50); got != 100 {
		t.Errorf("SocialConnection(50) = %v, want cap 100", got)
	}
}
