package scoring

import (
	"math"

	"auralog/internal/models"
)

// MoodStress is one day of combined mood/stress history used by the pattern
// detectors.
type MoodStress struct {
	Date   string
	Mood   float64
	Stress float64
}

// Combined returns the combined well-being score (mood minus stress).
func (m MoodStress) Combined() float64 {
	return m.Mood - m.Stress
}

// RecoveryResult describes a detected behavioral recovery.
type RecoveryResult struct {
	RecoveryType string
	Improvement  float64
	TroughDate   string
	TroughScore  float64
}

// DetectRecovery scans a trailing window for a rebound. window is sorted
// oldest first and its last element is the record that triggered detection.
// A recovery requires BOTH the combined-score improvement from the trough
// to exceed the threshold AND the trough itself to have been below the
// trough ceiling.
func DetectRecovery(window []MoodStress, t Thresholds) (RecoveryResult, bool) {
	if len(window) < 2 {
		return RecoveryResult{}, false
	}

	current := window[len(window)-1]

	troughIdx := 0
	for i, d := range window[:len(window)-1] {
		if d.Combined() < window[troughIdx].Combined() {
			troughIdx = i
		}
	}
	trough := window[troughIdx]

	improvement := current.Combined() - trough.Combined()
	if improvement <= t.RecoveryImprovement || trough.Combined() >= t.RecoveryTrough {
		return RecoveryResult{}, false
	}

	moodGain := current.Mood - trough.Mood
	stressDrop := trough.Stress - current.Stress

	recoveryType := models.RecoveryStressRelief
	if moodGain >= stressDrop {
		recoveryType = models.RecoveryEmotional
	}

	return RecoveryResult{
		RecoveryType: recoveryType,
		Improvement:  improvement,
		TroughDate:   trough.Date,
		TroughScore:  trough.Combined(),
	}, true
}

// HalfAverages splits a window of daily history into halves and returns the
// (mood, stress) averages of each: first half then second half.
func HalfAverages(window []MoodStress) (m1, s1, m2, s2 float64) {
	half := len(window) / 2
	first, second := window[:half], window[half:]

	for _, d := range first {
		m1 += d.Mood
		s1 += d.Stress
	}
	for _, d := range second {
		m2 += d.Mood
		s2 += d.Stress
	}
	if len(first) > 0 {
		m1 /= float64(len(first))
		s1 /= float64(len(first))
	}
	if len(second) > 0 {
		m2 /= float64(len(second))
		s2 /= float64(len(second))
	}
	return
}

// ClassifyLifeEvent labels a multi-week shift in averaged mood/stress.
// Shifts are second-half minus first-half. Returns false when neither
// shift crosses its threshold. The category priority order is fixed:
// positive_life_change, challenging_life_event, major_stress_shift,
// significant_mood_change, unknown_transition.
func ClassifyLifeEvent(moodShift, stressShift float64, t Thresholds) (string, bool) {
	if math.Abs(moodShift) <= t.LifeEventMoodShift && math.Abs(stressShift) <= t.LifeEventStressShift {
		return "", false
	}

	switch {
	case moodShift > t.LifeEventMoodShift && stressShift < -t.LifeEventStressShift:
		return models.LifeEventPositiveChange, true
	case moodShift < -t.LifeEventMoodShift && stressShift > t.LifeEventStressShift:
		return models.LifeEventChallengingEvent, true
	case math.Abs(stressShift) > t.LifeEventStressShift:
		return models.LifeEventMajorStressShift, true
	case math.Abs(moodShift) > t.LifeEventMoodShift:
		return models.LifeEventSignificantMoodMove, true
	default:
		return models.LifeEventUnknownTransition, true
	}
}
