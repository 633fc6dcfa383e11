package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"auralog/internal/models"
	"auralog/internal/services"
)

// MirrorBuilderJob composes yesterday's cognitive mirror for every user.
// Runs after daily aggregation so the per-day rollups are in place.
type MirrorBuilderJob struct {
	mirrors *services.MirrorService
	users   *services.UserService
	metrics *services.Metrics
}

// NewMirrorBuilderJob creates the nightly mirror build job.
func NewMirrorBuilderJob(mirrors *services.MirrorService, users *services.UserService, metrics *services.Metrics) *MirrorBuilderJob {
	return &MirrorBuilderJob{
		mirrors: mirrors,
		users:   users,
		metrics: metrics,
	}
}

func (j *MirrorBuilderJob) Name() string { return "mirror_builder" }

// Run builds mirrors for yesterday's window.
func (j *MirrorBuilderJob) Run(ctx context.Context) error {
	day := time.Now().UTC().Truncate(24 * time.Hour).Add(-24 * time.Hour)
	date := models.DateKey(day)

	log.Printf("[MIRROR] Starting mirror build for %s", date)
	startTime := time.Now()

	var processed, skipped, failed int
	err := j.users.ForEachUser(ctx, func(userID string) error {
		mirror, err := j.mirrors.BuildForDay(ctx, userID, day)
		if err != nil {
			failed++
			j.recordOutcome("error")
			log.Printf("[MIRROR] Failed for user %s: %v", userID, err)
			return nil
		}
		if mirror == nil {
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

	log.Printf("[MIRROR] Completed %s: %d processed, %d skipped, %d failed in %v",
		date, processed, skipped, failed, time.Since(startTime))

	return nil
}

func (j *MirrorBuilderJob) recordOutcome(outcome string) {
	if j.metrics != nil {
		j.metrics.RecordUserOutcome(j.Name(), outcome)
	}
}
