package scoring

// WellnessIndex blends step count and movement into a 0-100 score.
// 10k steps saturates the step half; a full movement score saturates
// the other.
func WellnessIndex(stepsCount int, movementScore float64) float64 {
	stepScore := Clamp(float64(stepsCount)/200, 0, 50)
	return stepScore + Clamp(movementScore/2, 0, 50)
}

// HeartRateStress maps an average daily heart rate onto a 0-100 stress
// proxy. 60 bpm and below reads as zero; no heart rate data reads as
// zero rather than resting-rate stress.
func HeartRateStress(heartRateAvg float64) float64 {
	if heartRateAvg <= 0 {
		return 0
	}
	return Clamp((heartRateAvg-60)*1.5, 0, 100)
}
