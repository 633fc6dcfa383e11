package scoring

import (
	"math"
	"testing"
	"time"

	"auralog/internal/models"
)

// forecastHistory builds n days of history, most recent first, ending at
// newest. moods maps history index to mood score; unmapped days get 50.
func forecastHistory(n int, newest time.Time, moods map[int]float64, stress float64) []DayMetric {
	history := make([]DayMetric, n)
	for i := 0; i < n; i++ {
		mood := 50.0
		if m, ok := moods[i]; ok {
			mood = m
		}
		history[i] = DayMetric{
			Date:   newest.AddDate(0, 0, -i),
			Mood:   mood,
			Stress: stress,
		}
	}
	return history
}

func TestForecastSkipsBelowMinimumHistory(t *testing.T) {
	newest := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	history := forecastHistory(6, newest, nil, 40)

	if _, ok := Forecast(history, newest.AddDate(0, 0, 1), DefaultThresholds()); ok {
		t.Fatal("expected no forecast with exactly 6 days of history")
	}

	if _, ok := Forecast(forecastHistory(7, newest, nil, 40), newest.AddDate(0, 0, 1), DefaultThresholds()); !ok {
		t.Fatal("expected a forecast with 7 days of history")
	}
}

func TestForecastSeasonalClassification(t *testing.T) {
	newest := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	target := newest.AddDate(0, 0, 1)
	th := DefaultThresholds()

	// Indexes 6, 13, 20, 27 share the target's weekday in a 30-day history.
	positive := forecastHistory(30, newest, map[int]float64{6: 90, 13: 90, 20: 90, 27: 90, 0: 90}, 40)
	res, ok := Forecast(positive, target, th)
	if !ok {
		t.Fatal("expected forecast")
	}
	if res.PredictedMood != models.MoodPositive || res.Confidence != 0.75 {
		t.Errorf("positive seasonal: got (%q, %v), want (positive, 0.75)", res.PredictedMood, res.Confidence)
	}

	challenging := forecastHistory(30, newest, map[int]float64{6: 20, 13: 20, 20: 20, 27: 20, 0: 20}, 40)
	res, ok = Forecast(challenging, target, th)
	if !ok {
		t.Fatal("expected forecast")
	}
	if res.PredictedMood != models.MoodChallenging || res.Confidence != 0.7 {
		t.Errorf("challenging seasonal: got (%q, %v), want (challenging, 0.7)", res.PredictedMood, res.Confidence)
	}

	// Only one weekday sample in a 7-day history: not enough, stays stable.
	// The endpoints match so the trend slope is flat and cannot interfere.
	sparse := forecastHistory(7, newest, map[int]float64{6: 95, 0: 95}, 40)
	res, ok = Forecast(sparse, target, th)
	if !ok {
		t.Fatal("expected forecast")
	}
	if res.PredictedMood != models.MoodStable || res.Confidence != 0.6 {
		t.Errorf("sparse seasonal: got (%q, %v), want (stable, 0.6)", res.PredictedMood, res.Confidence)
	}
}

func TestForecastTrendAdjustment(t *testing.T) {
	newest := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	target := newest.AddDate(0, 0, 1)
	th := DefaultThresholds()

	// Challenging seasonal but a strong upward trend: downgraded to stable,
	// confidence bumped.
	upward := forecastHistory(30, newest, map[int]float64{6: 20, 13: 20, 20: 20, 27: 20, 0: 90}, 40)
	res, ok := Forecast(upward, target, th)
	if !ok {
		t.Fatal("expected forecast")
	}
	if res.TrendSlope <= 5 {
		t.Fatalf("test setup: slope %v should exceed 5", res.TrendSlope)
	}
	if res.PredictedMood != models.MoodStable {
		t.Errorf("upward trend should downgrade challenging to stable, got %q", res.PredictedMood)
	}
	if math.Abs(res.Confidence-0.8) > 1e-9 { // 0.7 + 0.1
		t.Errorf("Confidence = %v, want 0.8", res.Confidence)
	}

	// Positive seasonal but a strong downward trend: nudged toward
	// challenging (one step, to stable), confidence bumped.
	downward := forecastHistory(30, newest, map[int]float64{6: 90, 13: 90, 20: 90, 27: 90, 0: 20}, 40)
	res, ok = Forecast(downward, target, th)
	if !ok {
		t.Fatal("expected forecast")
	}
	if res.TrendSlope >= -5 {
		t.Fatalf("test setup: slope %v should be below -5", res.TrendSlope)
	}
	if res.PredictedMood != models.MoodStable {
		t.Errorf("downward trend should nudge positive toward stable, got %q", res.PredictedMood)
	}
	if math.Abs(res.Confidence-0.85) > 1e-9 { // 0.75 + 0.1
		t.Errorf("Confidence = %v, want 0.85", res.Confidence)
	}
}

func TestForecastConfidenceAlwaysInRange(t *testing.T) {
	newest := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	target := newest.AddDate(0, 0, 1)
	th := DefaultThresholds()

	moodSets := []map[int]float64{
		nil,
		{0: 100, 6: 0},
		{0: 0, 6: 100},
		{6: 90, 13: 90, 20: 90, 27: 90, 0: 100},
		{6: 20, 13: 20, 20: 20, 27: 20, 0: 0},
	}
	for _, moods := range moodSets {
		res, ok := Forecast(forecastHistory(30, newest, moods, 80), target, th)
		if !ok {
			t.Fatal("expected forecast")
		}
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Errorf("Confidence %v out of [0,1] for moods %v", res.Confidence, moods)
		}
	}
}

func TestForecastStressAverage(t *testing.T) {
	newest := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	res, ok := Forecast(forecastHistory(30, newest, nil, 64), newest.AddDate(0, 0, 1), DefaultThresholds())
	if !ok {
		t.Fatal("expected forecast")
	}
	if res.AvgRecentStress != 64 {
		t.Errorf("AvgRecentStress = %v, want 64", res.AvgRecentStress)
	}
	if len(res.InfluencingFactors) == 0 || len(res.RecommendedActions) == 0 {
		t.Error("forecast should always carry factors and actions")
	}
}
