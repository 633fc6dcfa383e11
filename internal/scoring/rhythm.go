package scoring

import (
	"math"

	"auralog/internal/models"
)

// DefaultSleepHours is assumed when a day has no explicit sleep markers.
// There is no real sleep detection; this is a placeholder policy.
const DefaultSleepHours = 8.0

// MovementScore converts total motion duration for a day into a 0-100
// score. Monotonic non-decreasing in the duration, capped at 100.
func MovementScore(totalMotionSeconds float64) float64 {
	if totalMotionSeconds < 0 {
		return 0
	}
	return math.Min(100, totalMotionSeconds/60)
}

// ClassifyRhythm labels a day's sleep+movement balance. Off-Rhythm is
// checked before Overstimulated; the order is part of the contract.
func ClassifyRhythm(sleepHours, movementScore float64, motionEventCount int) string {
	if sleepHours < 6 || movementScore < 20 {
		return models.RhythmOffRhythm
	}
	if movementScore > 80 && motionEventCount > 100 {
		return models.RhythmOverstimulated
	}
	return models.RhythmStable
}

// RhythmComposite computes the weighted rhythm score around a 50 baseline:
// sleep 40%, movement 30%, wellness 30%. A nil wellness index contributes 0
// to the composite rather than dragging it down.
func RhythmComposite(sleepHours, movementScore float64, wellnessIndex *float64) float64 {
	sleepScore := math.Min(100, sleepHours*12.5) // 8h maps to 100

	composite := 50 +
		0.4*(sleepScore-50) +
		0.3*(movementScore-50)
	if wellnessIndex != nil {
		composite += 0.3 * (*wellnessIndex - 50)
	}

	return Clamp(composite, 0, 100)
}

// ReclassifyRhythm overrides the raw rhythm state by absolute composite
// score thresholds: >75 Stable, <40 Off-Rhythm, otherwise the raw state
// stands.
func ReclassifyRhythm(composite float64, rawState string) string {
	if composite > 75 {
		return models.RhythmStable
	}
	if composite < 40 {
		return models.RhythmOffRhythm
	}
	return rawState
}
