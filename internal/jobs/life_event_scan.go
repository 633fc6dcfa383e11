package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"auralog/internal/services"
)

// LifeEventScanJob compares the last two 14-day mirror halves for every
// user and records a life event when the shift crosses a threshold.
// Runs weekly.
type LifeEventScanJob struct {
	patterns *services.PatternService
	users    *services.UserService
	metrics  *services.Metrics
}

// NewLifeEventScanJob creates the weekly life event scan job.
func NewLifeEventScanJob(patterns *services.PatternService, users *services.UserService, metrics *services.Metrics) *LifeEventScanJob {
	return &LifeEventScanJob{
		patterns: patterns,
		users:    users,
		metrics:  metrics,
	}
}

func (j *LifeEventScanJob) Name() string { return "life_event_scan" }

func (j *LifeEventScanJob) Run(ctx context.Context) error {
	now := time.Now().UTC()

	log.Println("[LIFE-EVENT] Starting life event scan")
	startTime := time.Now()

	var detected, quiet, failed int
	err := j.users.ForEachUser(ctx, func(userID string) error {
		event, err := j.patterns.ScanLifeEvents(ctx, userID, now)
		if err != nil {
			failed++
			j.recordOutcome("error")
			log.Printf("[LIFE-EVENT] Failed for user %s: %v", userID, err)
			return nil
		}
		if event == nil {
			quiet++
			j.recordOutcome("skipped")
			return nil
		}
		detected++
		j.recordOutcome("processed")
		log.Printf("[LIFE-EVENT] Detected %s for user %s", event.Category, userID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("user iteration failed: %w", err)
	}

	log.Printf("[LIFE-EVENT] Completed: %d detected, %d quiet, %d failed in %v",
		detected, quiet, failed, time.Since(startTime))

	return nil
}

func (j *LifeEventScanJob) recordOutcome(outcome string) {
	if j.metrics != nil {
		j.metrics.RecordUserOutcome(j.Name(), outcome)
	}
}
