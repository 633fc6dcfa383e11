package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"auralog/internal/services"
)

// ForecastJob projects tomorrow's emotional state for every user with
// enough mirror history. Runs after the mirror build.
type ForecastJob struct {
	forecasts *services.ForecastService
	users     *services.UserService
	metrics   *services.Metrics
}

// NewForecastJob creates the nightly forecast job.
func NewForecastJob(forecasts *services.ForecastService, users *services.UserService, metrics *services.Metrics) *ForecastJob {
	return &ForecastJob{
		forecasts: forecasts,
		users:     users,
		metrics:   metrics,
	}
}

func (j *ForecastJob) Name() string { return "emotion_forecast" }

func (j *ForecastJob) Run(ctx context.Context) error {
	now := time.Now().UTC()

	log.Println("[FORECAST] Starting forecast run")
	startTime := time.Now()

	var processed, skipped, failed int
	err := j.users.ForEachUser(ctx, func(userID string) error {
		forecast, err := j.forecasts.BuildForUser(ctx, userID, now)
		if err != nil {
			failed++
			j.recordOutcome("error")
			log.Printf("[FORECAST] Failed for user %s: %v", userID, err)
			return nil
		}
		if forecast == nil {
			// Not enough mirror history yet.
			skipped++
			j.recordOutcome("skipped")
			return nil
		}
		processed++
		j.recordOutcome("processed")
		return nil
	})
	if err != nil {
		return fmt.Errorf("user iteration failed: %w", err)
	}

	log.Printf("[FORECAST] Completed: %d processed, %d skipped, %d failed in %v",
		processed, skipped, failed, time.Since(startTime))

	return nil
}

func (j *ForecastJob) recordOutcome(outcome string) {
	if j.metrics != nil {
		j.metrics.RecordUserOutcome(j.Name(), outcome)
	}
}
