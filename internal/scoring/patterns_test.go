package scoring

import (
	"testing"

	"auralog/internal/models"
)

func TestDetectRecoveryRequiresBothConditions(t *testing.T) {
	th := DefaultThresholds()

	// Trough combined score 19, improvement 31: both conditions met.
	recovered := []MoodStress{
		{Date: "2026-08-22", Mood: 49, Stress: 30}, // combined 19 (trough)
		{Date: "2026-08-23", Mood: 60, Stress: 30},
		{Date: "2026-08-28", Mood: 80, Stress: 30}, // combined 50, improvement 31
	}
	res, ok := DetectRecovery(recovered, th)
	if !ok {
		t.Fatal("improvement 31 from trough 19 should be a recovery")
	}
	if res.Improvement != 31 {
		t.Errorf("Improvement = %v, want 31", res.Improvement)
	}
	if res.TroughDate != "2026-08-22" {
		t.Errorf("TroughDate = %q, want 2026-08-22", res.TroughDate)
	}

	// Same improvement but trough combined score 21: not a recovery.
	notLowEnough := []MoodStress{
		{Date: "2026-08-22", Mood: 51, Stress: 30}, // combined 21
		{Date: "2026-08-28", Mood: 82, Stress: 30}, // improvement 31
	}
	if _, ok := DetectRecovery(notLowEnough, th); ok {
		t.Error("trough 21 should not qualify even with improvement 31")
	}

	// Low trough but improvement exactly at the threshold: not a recovery.
	notImprovedEnough := []MoodStress{
		{Date: "2026-08-22", Mood: 49, Stress: 30}, // combined 19
		{Date: "2026-08-28", Mood: 79, Stress: 30}, // improvement 30
	}
	if _, ok := DetectRecovery(notImprovedEnough, th); ok {
		t.Error("improvement of exactly 30 should not qualify")
	}
}

func TestDetectRecoveryType(t *testing.T) {
	th := DefaultThresholds()

	// Mood gain dominates: emotional recovery.
	emotional := []MoodStress{
		{Date: "2026-08-22", Mood: 20, Stress: 40}, // combined -20
		{Date: "2026-08-28", Mood: 60, Stress: 38}, // mood +40, stress -2
	}
	res, ok := DetectRecovery(emotional, th)
	if !ok {
		t.Fatal("expected recovery")
	}
	if res.RecoveryType != models.RecoveryEmotional {
		t.Errorf("RecoveryType = %q, want emotional", res.RecoveryType)
	}

	// Stress drop dominates: stress relief.
	stressRelief := []MoodStress{
		{Date: "2026-08-22", Mood: 50, Stress: 80}, // combined -30
		{Date: "2026-08-28", Mood: 55, Stress: 40}, // mood +5, stress -40
	}
	res, ok = DetectRecovery(stressRelief, th)
	if !ok {
		t.Fatal("expected recovery")
	}
	if res.RecoveryType != models.RecoveryStressRelief {
		t.Errorf("RecoveryType = %q, want stress_relief", res.RecoveryType)
	}
}

func TestDetectRecoveryNeedsHistory(t *testing.T) {
	if _, ok := DetectRecovery([]MoodStress{{Mood: 80, Stress: 10}}, DefaultThresholds()); ok {
		t.Error("a single record cannot be a recovery")
	}
	if _, ok := DetectRecovery(nil, DefaultThresholds()); ok {
		t.Error("empty window cannot be a recovery")
	}
}

func TestClassifyLifeEventPriorityOrder(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name        string
		moodShift   float64
		stressShift float64
		want        string
	}{
		{"mood up, stress down", 26, -21, models.LifeEventPositiveChange},
		{"mood down, stress up", -26, 21, models.LifeEventChallengingEvent},
		{"stress shift alone", 10, 21, models.LifeEventMajorStressShift},
		{"mood shift alone, ambiguous stress", 26, 16, models.LifeEventSignificantMoodMove},
		{"mood down alone", -26, -16, models.LifeEventSignificantMoodMove},
		{"stress down alone", 0, -21, models.LifeEventMajorStressShift},
	}

	for _, tt := range tests {
		got, ok := ClassifyLifeEvent(tt.moodShift, tt.stressShift, th)
		if !ok {
			t.Errorf("%s: expected an event for shifts (%v, %v)", tt.name, tt.moodShift, tt.stressShift)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: ClassifyLifeEvent(%v, %v) = %q, want %q",
				tt.name, tt.moodShift, tt.stressShift, got, tt.want)
		}
	}
}

func TestClassifyLifeEventNoTrigger(t *testing.T) {
	if _, ok := ClassifyLifeEvent(25, 20, DefaultThresholds()); ok {
		t.Error("shifts exactly at the thresholds should not trigger")
	}
	if _, ok := ClassifyLifeEvent(0, 0, DefaultThresholds()); ok {
		t.Error("no shift should not trigger")
	}
}

func TestHalfAverages(t *testing.T) {
	window := []MoodStress{
		{Mood: 40, Stress: 60},
		{Mood: 60, Stress: 40},
		{Mood: 80, Stress: 20},
		{Mood: 100, Stress: 0},
	}
	m1, s1, m2, s2 := HalfAverages(window)
	if m1 != 50 || s1 != 50 {
		t.Errorf("first half averages = (%v, %v), want (50, 50)", m1, s1)
	}
	if m2 != 90 || s2 != 10 {
		t.Errorf("second half averages = (%v, %v), want (90, 10)", m2, s2)
	}
}
