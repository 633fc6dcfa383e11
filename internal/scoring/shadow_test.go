package scoring

import (
	"testing"
	"time"
)

func TestFrictionTaps(t *testing.T) {
	base := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	// Three opens inside 5s windows: two qualifying pairs.
	opens := []time.Time{
		base,
		base.Add(2 * time.Second),
		base.Add(4 * time.Second),
		base.Add(60 * time.Second), // too far from the previous
	}
	if got := FrictionTaps(opens); got != 2 {
		t.Errorf("FrictionTaps = %d, want 2", got)
	}

	// Exactly 5s apart does not count.
	if got := FrictionTaps([]time.Time{base, base.Add(5 * time.Second)}); got != 0 {
		t.Errorf("5s gap should not count, got %d", got)
	}

	// Unsorted input is handled.
	shuffled := []time.Time{base.Add(4 * time.Second), base, base.Add(2 * time.Second)}
	if got := FrictionTaps(shuffled); got != 2 {
		t.Errorf("unsorted FrictionTaps = %d, want 2", got)
	}

	if got := FrictionTaps(nil); got != 0 {
		t.Errorf("FrictionTaps(nil) = %d, want 0", got)
	}
}

func TestBedtimeScrollMinutes(t *testing.T) {
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	spans := []ScreenSpan{
		{Start: day.Add(23 * time.Hour), Duration: 30 * time.Minute},               // 23:00, counts
		{Start: day.Add(2 * time.Hour), Duration: 15 * time.Minute},                // 02:00, counts
		{Start: day.Add(14 * time.Hour), Duration: 60 * time.Minute},               // 14:00, ignored
		{Start: day.Add(6*time.Hour + 30*time.Minute), Duration: 10 * time.Minute}, // 06:30, hour 6 counts
	}

	if got := BedtimeScrollMinutes(spans, time.UTC); got != 55 {
		t.Errorf("BedtimeScrollMinutes = %v, want 55", got)
	}
}

func TestShadowDerivedMultiples(t *testing.T) {
	compulsive, hesitation, avoidance := ShadowDerived(10)
	if compulsive != 15 {
		t.Errorf("compulsiveOpens = %v, want 15", compulsive)
	}
	if hesitation != 3 {
		t.Errorf("hesitationTaps = %v, want 3", hesitation)
	}
	if avoidance != 8 {
		t.Errorf("avoidanceBehaviors = %v, want 8", avoidance)
	}
}

func TestIsNightHour(t *testing.T) {
	for _, h := range []int{22, 23, 0, 3, 6} {
		if !IsNightHour(h) {
			t.Errorf("hour %d should be a night hour", h)
		}
	}
	for _, h := range []int{7, 12, 21} {
		if IsNightHour(h) {
			t.Errorf("hour %d should not be a night hour", h)
		}
	}
}
