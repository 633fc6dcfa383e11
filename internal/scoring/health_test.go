package scoring

import "testing"

func TestWellnessIndex(t *testing.T) {
	tests := []struct {
		name     string
		steps    int
		movement float64
		want     float64
	}{
		{"nothing", 0, 0, 0},
		{"steps only half scale", 5000, 0, 25},
		{"steps saturate at 10k", 25000, 0, 50},
		{"movement only", 0, 100, 50},
		{"both saturated", 20000, 100, 100},
		{"mixed", 4000, 60, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WellnessIndex(tt.steps, tt.movement); got != tt.want {
				t.Errorf("WellnessIndex(%d, %v) = %v, want %v", tt.steps, tt.movement, got, tt.want)
			}
		})
	}
}

func TestHeartRateStress(t *testing.T) {
	if got := HeartRateStress(0); got != 0 {
		t.Errorf("no data should read zero, got %v", got)
	}
	if got := HeartRateStress(55); got != 0 {
		t.Errorf("resting rate should read zero, got %v", got)
	}
	if got := HeartRateStress(80); got != 30 {
		t.Errorf("HeartRateStress(80) = %v, want 30", got)
	}
	if got := HeartRateStress(200); got != 100 {
		t.Errorf("stress should cap at 100, got %v", got)
	}
}
