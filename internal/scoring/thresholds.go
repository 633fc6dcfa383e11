package scoring

// Thresholds holds the tunable cut-offs used across the scoring pipeline.
// Values are loaded from a YAML file at startup and hot-reloaded on change;
// zero-value fields fall back to the defaults below.
type Thresholds struct {
	MoodHigh   float64 `yaml:"mood_high"`
	MoodLow    float64 `yaml:"mood_low"`
	StressHigh float64 `yaml:"stress_high"`
	StressLow  float64 `yaml:"stress_low"`

	// Forecast seasonal bands
	ForecastPositive    float64 `yaml:"forecast_positive"`
	ForecastChallenging float64 `yaml:"forecast_challenging"`

	// Recovery detection
	RecoveryImprovement float64 `yaml:"recovery_improvement"`
	RecoveryTrough      float64 `yaml:"recovery_trough"`

	// Life event shifts
	LifeEventMoodShift   float64 `yaml:"life_event_mood_shift"`
	LifeEventStressShift float64 `yaml:"life_event_stress_shift"`
}

// DefaultThresholds returns the built-in cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MoodHigh:   70,
		MoodLow:    30,
		StressHigh: 70,
		StressLow:  30,

		ForecastPositive:    70,
		ForecastChallenging: 40,

		RecoveryImprovement: 30,
		RecoveryTrough:      20,

		LifeEventMoodShift:   25,
		LifeEventStressShift: 20,
	}
}

// FillDefaults replaces zero-value fields with the built-in defaults.
func (t *Thresholds) FillDefaults() {
	d := DefaultThresholds()
	if t.MoodHigh == 0 {
		t.MoodHigh = d.MoodHigh
	}
	if t.MoodLow == 0 {
		t.MoodLow = d.MoodLow
	}
	if t.StressHigh == 0 {
		t.StressHigh = d.StressHigh
	}
	if t.StressLow == 0 {
		t.StressLow = d.StressLow
	}
	if t.ForecastPositive == 0 {
		t.ForecastPositive = d.ForecastPositive
	}
	if t.ForecastChallenging == 0 {
		t.ForecastChallenging = d.ForecastChallenging
	}
	if t.RecoveryImprovement == 0 {
		t.RecoveryImprovement = d.RecoveryImprovement
	}
	if t.RecoveryTrough == 0 {
		t.RecoveryTrough = d.RecoveryTrough
	}
	if t.LifeEventMoodShift == 0 {
		t.LifeEventMoodShift = d.LifeEventMoodShift
	}
	if t.LifeEventStressShift == 0 {
		t.LifeEventStressShift = d.LifeEventStressShift
	}
}
