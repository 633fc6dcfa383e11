package scoring

import (
	"time"

	"auralog/internal/models"
)

// MinForecastHistory is the minimum number of daily mirror records required
// before a forecast is emitted.
const MinForecastHistory = 7

// DayMetric is one day of mirror history, as consumed by the forecaster.
type DayMetric struct {
	Date   time.Time
	Mood   float64
	Stress float64
}

// ForecastResult is the computed next-day prediction.
type ForecastResult struct {
	PredictedMood      string
	Confidence         float64
	AvgRecentStress    float64
	TrendSlope         float64
	InfluencingFactors []string
	RecommendedActions []string
}

// Forecast predicts the mood for target from the trailing mirror history.
// history must be sorted most recent first. Returns false when fewer than
// MinForecastHistory records are available; no forecast is emitted then.
func Forecast(history []DayMetric, target time.Time, t Thresholds) (ForecastResult, bool) {
	if len(history) < MinForecastHistory {
		return ForecastResult{}, false
	}

	var res ForecastResult

	// Average stress over the most recent 7 records.
	for i := 0; i < 7; i++ {
		res.AvgRecentStress += history[i].Stress
	}
	res.AvgRecentStress /= 7

	// Day-of-week seasonal estimate: most recent 4 mood scores that fell on
	// the target's weekday, used only when more than 2 samples exist.
	var seasonal []float64
	for _, d := range history {
		if d.Date.Weekday() == target.Weekday() {
			seasonal = append(seasonal, d.Mood)
			if len(seasonal) == 4 {
				break
			}
		}
	}

	res.PredictedMood = models.MoodStable
	res.Confidence = 0.6
	if len(seasonal) > 2 {
		avg := 0.0
		for _, m := range seasonal {
			avg += m
		}
		avg /= float64(len(seasonal))

		if avg > t.ForecastPositive {
			res.PredictedMood = models.MoodPositive
			res.Confidence = 0.75
		} else if avg < t.ForecastChallenging {
			res.PredictedMood = models.MoodChallenging
			res.Confidence = 0.7
		}
	}

	// Linear trend over the most recent 7 entries, index 0 = most recent.
	res.TrendSlope = (history[0].Mood - history[6].Mood) / 6

	// The trend rules run unconditionally after the seasonal classification.
	if res.TrendSlope > 5 {
		if res.PredictedMood == models.MoodChallenging {
			res.PredictedMood = models.MoodStable
		}
		res.Confidence += 0.1
	}
	if res.TrendSlope < -5 {
		switch res.PredictedMood {
		case models.MoodPositive:
			res.PredictedMood = models.MoodStable
		case models.MoodStable:
			res.PredictedMood = models.MoodChallenging
		}
		res.Confidence += 0.1
	}

	res.Confidence = Clamp(res.Confidence, 0, 1)

	res.InfluencingFactors = forecastFactors(res, t)
	res.RecommendedActions = forecastActions(res.PredictedMood)

	return res, true
}

func forecastFactors(res ForecastResult, t Thresholds) []string {
	var factors []string
	if res.AvgRecentStress > t.StressHigh {
		factors = append(factors, "elevated stress over the past week")
	} else if res.AvgRecentStress < t.StressLow {
		factors = append(factors, "low stress over the past week")
	}
	if res.TrendSlope > 5 {
		factors = append(factors, "upward mood trend")
	} else if res.TrendSlope < -5 {
		factors = append(factors, "downward mood trend")
	}
	if len(factors) == 0 {
		factors = append(factors, "day-of-week mood history")
	}
	return factors
}

func forecastActions(predictedMood string) []string {
	switch predictedMood {
	case models.MoodPositive:
		return []string{
			"Plan something meaningful while momentum is on your side.",
			"Reach out to someone you have been meaning to talk to.",
		}
	case models.MoodChallenging:
		return []string{
			"Keep tomorrow's schedule light where you can.",
			"Build in a short walk or screen-free break.",
			"Get to bed at a consistent time tonight.",
		}
	default:
		return []string{
			"Keep your usual routines steady.",
			"A little movement goes a long way.",
		}
	}
}
