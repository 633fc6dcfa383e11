package jobs

import (
	"context"
	"log"
	"time"

	"auralog/internal/services"
)

// RetentionCleanupJob prunes raw signal events past the retention
// window. Derived daily records and mirrors are kept forever; only the
// raw capture stream ages out.
type RetentionCleanupJob struct {
	signals       *services.SignalService
	retentionDays int
}

// NewRetentionCleanupJob creates the raw signal retention job.
func NewRetentionCleanupJob(signals *services.SignalService, retentionDays int) *RetentionCleanupJob {
	return &RetentionCleanupJob{
		signals:       signals,
		retentionDays: retentionDays,
	}
}

func (j *RetentionCleanupJob) Name() string { return "retention_cleanup" }

func (j *RetentionCleanupJob) Run(ctx context.Context) error {
	if j.retentionDays <= 0 {
		log.Println("[RETENTION] Raw signal retention disabled")
		return nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -j.retentionDays)
	log.Printf("[RETENTION] Pruning raw signals before %s", cutoff.Format(time.RFC3339))

	deleted, err := j.signals.PruneBefore(ctx, cutoff)
	if err != nil {
		log.Printf("[RETENTION] Prune failed: %v", err)
		return err
	}

	log.Printf("[RETENTION] Deleted %d raw signal events", deleted)
	return nil
}
