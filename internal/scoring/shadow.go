package scoring

import (
	"sort"
	"time"
)

// Friction tap window: consecutive app opens closer than this count as one
// friction tap.
const frictionTapWindow = 5000 * time.Millisecond

// ScreenSpan is one screen-on interval.
type ScreenSpan struct {
	Start    time.Time
	Duration time.Duration
}

// FrictionTaps counts consecutive app-open pairs less than 5 seconds apart.
// The input does not need to be sorted.
func FrictionTaps(appOpens []time.Time) int {
	if len(appOpens) < 2 {
		return 0
	}

	sorted := make([]time.Time, len(appOpens))
	copy(sorted, appOpens)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	taps := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) < frictionTapWindow {
			taps++
		}
	}
	return taps
}

// BedtimeScrollMinutes totals screen-on minutes that started in the local
// late-night band: hour in [22,24) or [0,6].
func BedtimeScrollMinutes(spans []ScreenSpan, loc *time.Location) float64 {
	if loc == nil {
		loc = time.UTC
	}

	minutes := 0.0
	for _, s := range spans {
		hour := s.Start.In(loc).Hour()
		if hour >= 22 || hour <= 6 {
			minutes += s.Duration.Minutes()
		}
	}
	return minutes
}

// ShadowDerived expands friction taps into the derived behavior counters.
// These are heuristic placeholders: fixed linear multiples, not measured
// independently.
func ShadowDerived(frictionTaps int) (compulsiveOpens, hesitationTaps, avoidanceBehaviors float64) {
	f := float64(frictionTaps)
	return f * 1.5, f * 0.3, f * 0.8
}

// IsNightHour reports whether a local hour falls in the late-night band.
func IsNightHour(hour int) bool {
	return hour >= 22 || hour <= 6
}
