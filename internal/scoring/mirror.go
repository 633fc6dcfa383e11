package scoring

import (
	"math"

	"auralog/internal/models"
)

// MirrorInputs are the same-day aggregates the cognitive mirror is
// composed from.
type MirrorInputs struct {
	Sentiments        []float64 // per voice event, [-1, 1]
	NotificationCount int
	ScreenTimeMinutes float64
	FrictionTaps      int
	RhythmState       string // empty if no rhythm record for the day
}

// MirrorScores is the computed daily composite.
type MirrorScores struct {
	MoodScore        float64
	StressIndex      float64
	EnergyLevel      float64
	SocialConnection float64
	PurposeAlignment float64
	Highlights       []string
}

// MoodScore maps average per-event sentiment to 0-100, baseline 50 when
// there are no voice events.
func MoodScore(sentiments []float64) float64 {
	if len(sentiments) == 0 {
		return 50
	}
	sum := 0.0
	for _, s := range sentiments {
		sum += s
	}
	avg := sum / float64(len(sentiments))
	return Clamp(50+avg*50, 0, 100)
}

// StressIndex composes the daily stress proxy. Each additive term is
// independently capped before summing; the total is clamped to [0, 100].
func StressIndex(notificationCount int, screenTimeMinutes float64, frictionTaps int) float64 {
	stress := 30.0
	stress += math.Min(40, float64(notificationCount)*2)
	stress += math.Min(30, screenTimeMinutes/10)
	stress += math.Min(30, float64(frictionTaps)*3)
	return Clamp(stress, 0, 100)
}

// SocialConnection is a voice-activity proxy: 10 points per voice event,
// capped at 100.
func SocialConnection(voiceEventCount int) float64 {
	return math.Min(100, float64(voiceEventCount)*10)
}

// ComposeMirror computes the full daily composite from same-day aggregates.
func ComposeMirror(in MirrorInputs, t Thresholds) MirrorScores {
	mood := MoodScore(in.Sentiments)
	stress := StressIndex(in.NotificationCount, in.ScreenTimeMinutes, in.FrictionTaps)
	energy := 100 - stress // modeling simplification, not measured independently

	return MirrorScores{
		MoodScore:        mood,
		StressIndex:      stress,
		EnergyLevel:      energy,
		SocialConnection: SocialConnection(len(in.Sentiments)),
		PurposeAlignment: math.Round((mood + energy) / 2),
		Highlights:       Highlights(mood, stress, in.RhythmState, t),
	}
}

// Highlights selects at most one template per band, appended in a fixed
// check order: mood, then stress, then rhythm state.
func Highlights(mood, stress float64, rhythmState string, t Thresholds) []string {
	var insights []string

	if mood > t.MoodHigh {
		insights = append(insights, "Your mood ran notably bright today.")
	} else if mood < t.MoodLow {
		insights = append(insights, "Today carried a heavier emotional tone than usual.")
	}

	if stress > t.StressHigh {
		insights = append(insights, "Stress signals ran high; winding down early could help.")
	} else if stress < t.StressLow {
		insights = append(insights, "A calm day with very little stress load.")
	}

	switch rhythmState {
	case models.RhythmOffRhythm:
		insights = append(insights, "Your daily rhythm drifted off its usual pattern.")
	case models.RhythmOverstimulated:
		insights = append(insights, "A highly stimulated day; your senses got a workout.")
	}

	return insights
}
