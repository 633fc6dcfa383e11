package scoring

import (
	"testing"

	"auralog/internal/models"
)

func TestMovementScoreMonotonicAndCapped(t *testing.T) {
	prev := -1.0
	for _, seconds := range []float64{0, 30, 60, 600, 3000, 6000, 6001, 100000} {
		score := MovementScore(seconds)
		if score < prev {
			t.Errorf("MovementScore(%v) = %v, decreased from %v", seconds, score, prev)
		}
		if score > 100 {
			t.Errorf("MovementScore(%v) = %v, exceeds cap", seconds, score)
		}
		prev = score
	}

	if got := MovementScore(6000); got != 100 {
		t.Errorf("MovementScore(6000) = %v, want 100", got)
	}
	if got := MovementScore(-10); got != 0 {
		t.Errorf("MovementScore(-10) = %v, want 0", got)
	}
}

func TestClassifyRhythmOffRhythmWinsOverOverstimulated(t *testing.T) {
	// Low sleep forces Off-Rhythm even when movement and event count would
	// otherwise classify as Overstimulated.
	if got := ClassifyRhythm(5, 95, 200); got != models.RhythmOffRhythm {
		t.Errorf("ClassifyRhythm(5, 95, 200) = %q, want %q", got, models.RhythmOffRhythm)
	}
	if got := ClassifyRhythm(8, 10, 200); got != models.RhythmOffRhythm {
		t.Errorf("ClassifyRhythm(8, 10, 200) = %q, want %q", got, models.RhythmOffRhythm)
	}
}

func TestClassifyRhythm(t *testing.T) {
	tests := []struct {
		sleep    float64
		movement float64
		events   int
		want     string
	}{
		{8, 50, 50, models.RhythmStable},
		{8, 85, 150, models.RhythmOverstimulated},
		{8, 85, 100, models.RhythmStable}, // event count not strictly greater
		{8, 80, 150, models.RhythmStable}, // movement not strictly greater
		{6, 20, 0, models.RhythmStable},   // boundary values are not Off-Rhythm
		{5.9, 100, 0, models.RhythmOffRhythm},
	}

	for _, tt := range tests {
		if got := ClassifyRhythm(tt.sleep, tt.movement, tt.events); got != tt.want {
			t.Errorf("ClassifyRhythm(%v, %v, %d) = %q, want %q",
				tt.sleep, tt.movement, tt.events, got, tt.want)
		}
	}
}

func TestRhythmComposite(t *testing.T) {
	// Full sleep and average movement with no wellness index stays centered.
	got := RhythmComposite(8, 50, nil)
	if got != 70 { // 50 + 0.4*(100-50) + 0.3*0
		t.Errorf("RhythmComposite(8, 50, nil) = %v, want 70", got)
	}

	wellness := 100.0
	withWellness := RhythmComposite(8, 50, &wellness)
	if withWellness <= got {
		t.Errorf("wellness index should raise the composite: %v <= %v", withWellness, got)
	}

	low := RhythmComposite(0, 0, nil)
	if low < 0 || low > 100 {
		t.Errorf("RhythmComposite(0, 0, nil) = %v, out of range", low)
	}
}

func TestReclassifyRhythm(t *testing.T) {
	if got := ReclassifyRhythm(80, models.RhythmOffRhythm); got != models.RhythmStable {
		t.Errorf("composite 80 should override to Stable, got %q", got)
	}
	if got := ReclassifyRhythm(30, models.RhythmStable); got != models.RhythmOffRhythm {
		t.Errorf("composite 30 should override to Off-Rhythm, got %q", got)
	}
	if got := ReclassifyRhythm(60, models.RhythmOverstimulated); got != models.RhythmOverstimulated {
		t.Errorf("mid composite should keep raw state, got %q", got)
	}
}
