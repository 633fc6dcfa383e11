package jobs

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"auralog/internal/logging"
	"auralog/internal/models"
	"auralog/internal/scoring"
	"auralog/internal/services"
)

// DailyAggregationJob rolls the previous day's raw signals up into the
// per-day collections: rhythm map, health echo, device signal, shadow
// cognition and obscura patterns. A collection is only written for a
// user when the window holds events relevant to it, so a quiet day
// leaves no record rather than a zeroed one. Failures are per-user:
// one bad user is logged and skipped, the batch keeps going.
type DailyAggregationJob struct {
	signals *services.SignalService
	daily   *services.DailyRecordService
	users   *services.UserService
	pubsub  *services.PubSubService
	metrics *services.Metrics
}

// NewDailyAggregationJob creates the nightly aggregation job.
func NewDailyAggregationJob(
	signals *services.SignalService,
	daily *services.DailyRecordService,
	users *services.UserService,
	pubsub *services.PubSubService,
	metrics *services.Metrics,
) *DailyAggregationJob {
	return &DailyAggregationJob{
		signals: signals,
		daily:   daily,
		users:   users,
		pubsub:  pubsub,
		metrics: metrics,
	}
}

func (j *DailyAggregationJob) Name() string { return "daily_aggregation" }

// Run aggregates yesterday's window [00:00, 24:00) UTC for every known user.
func (j *DailyAggregationJob) Run(ctx context.Context) error {
	dayEnd := time.Now().UTC().Truncate(24 * time.Hour)
	dayStart := dayEnd.Add(-24 * time.Hour)
	date := models.DateKey(dayStart)

	log.Printf("[AGGREGATION] Starting daily aggregation for %s", date)
	startTime := time.Now()

	var processed, skipped, failed int
	err := j.users.ForEachUser(ctx, func(userID string) error {
		wrote, err := j.aggregateUser(ctx, userID, date, dayStart, dayEnd)
		if err != nil {
			failed++
			j.recordOutcome("error")
			logging.WithUser(slog.Default(), userID).Error("daily aggregation failed", "date", date, "error", err)
			return nil // keep iterating
		}
		if !wrote {
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

	log.Printf("[AGGREGATION] Completed %s: %d processed, %d skipped, %d failed in %v",
		date, processed, skipped, failed, time.Since(startTime))

	return nil
}

// aggregateUser builds and upserts each daily collection the user's
// window has events for. Returns false when the window was empty.
func (j *DailyAggregationJob) aggregateUser(ctx context.Context, userID, date string, start, end time.Time) (bool, error) {
	events, err := j.signals.EventsInWindow(ctx, userID, start, end)
	if err != nil {
		return false, fmt.Errorf("failed to load events: %w", err)
	}
	if len(events) == 0 {
		return false, nil
	}

	parts := services.PartitionByType(events)
	loc := j.users.Location(ctx, userID)
	now := time.Now().UTC()

	if err := j.buildRhythmMap(ctx, userID, date, parts, now); err != nil {
		return false, err
	}
	if err := j.buildHealthEcho(ctx, userID, date, parts, now); err != nil {
		return false, err
	}
	if err := j.buildDeviceSignal(ctx, userID, date, parts, now); err != nil {
		return false, err
	}
	if err := j.buildShadowCognition(ctx, userID, date, parts, loc, now); err != nil {
		return false, err
	}
	if err := j.buildObscuraPatterns(ctx, userID, date, parts, loc, now); err != nil {
		return false, err
	}

	return true, nil
}

// buildRhythmMap derives the sleep/movement summary from motion and
// sleep marker events, then announces the record for downstream
// detectors.
func (j *DailyAggregationJob) buildRhythmMap(ctx context.Context, userID, date string, parts map[string][]models.RawSignalEvent, now time.Time) error {
	motion := parts[models.EventTypeMotion]
	sleepMarkers := parts[models.EventTypeSleepMarker]
	if len(motion) == 0 && len(sleepMarkers) == 0 {
		return nil
	}

	var motionSeconds float64
	for _, e := range motion {
		motionSeconds += float64(e.Payload.DurationMs) / 1000
	}

	// The latest sleep marker wins; without one the day is assumed a
	// normal night's sleep so movement alone decides the state.
	sleepHours := scoring.DefaultSleepHours
	if len(sleepMarkers) > 0 {
		sleepHours = sleepMarkers[len(sleepMarkers)-1].Payload.SleepHours
	}

	movement := scoring.MovementScore(motionSeconds)

	rhythm := &models.RhythmMap{
		UserID:           userID,
		Date:             date,
		SleepHours:       sleepHours,
		MovementScore:    movement,
		MotionEventCount: len(motion),
		RhythmState:      scoring.ClassifyRhythm(sleepHours, movement, len(motion)),
		CreatedAt:        now,
	}

	if err := j.daily.SaveRhythmMap(ctx, rhythm); err != nil {
		return fmt.Errorf("failed to save rhythm map: %w", err)
	}

	if j.pubsub != nil {
		if err := j.pubsub.Publish(ctx, services.EventRhythmMapCreated, userID, date); err != nil {
			log.Printf("⚠️ [AGGREGATION] Failed to publish rhythm event for %s/%s: %v", userID, date, err)
		}
	}

	return nil
}

// buildHealthEcho rolls heart rate, steps and motion into the
// physiological summary.
func (j *DailyAggregationJob) buildHealthEcho(ctx context.Context, userID, date string, parts map[string][]models.RawSignalEvent, now time.Time) error {
	heartRates := parts[models.EventTypeHeartRate]
	stepEvents := parts[models.EventTypeSteps]
	motion := parts[models.EventTypeMotion]
	if len(heartRates) == 0 && len(stepEvents) == 0 && len(motion) == 0 {
		return nil
	}

	var hrAvg float64
	for _, e := range heartRates {
		hrAvg += e.Payload.HeartRate
	}
	if len(heartRates) > 0 {
		hrAvg /= float64(len(heartRates))
	}

	var steps int
	for _, e := range stepEvents {
		steps += e.Payload.Steps
	}

	var motionSeconds float64
	for _, e := range motion {
		motionSeconds += float64(e.Payload.DurationMs) / 1000
	}
	movement := scoring.MovementScore(motionSeconds)

	echo := &models.HealthEcho{
		UserID:        userID,
		Date:          date,
		HeartRateAvg:  hrAvg,
		MovementScore: movement,
		WellnessIndex: scoring.WellnessIndex(steps, movement),
		StepsCount:    steps,
		StressIndex:   scoring.HeartRateStress(hrAvg),
		CreatedAt:     now,
	}

	if err := j.daily.SaveHealthEcho(ctx, echo); err != nil {
		return fmt.Errorf("failed to save health echo: %w", err)
	}
	return nil
}

// buildDeviceSignal counts notifications, screen-on sessions and app
// opens, and totals screen time.
func (j *DailyAggregationJob) buildDeviceSignal(ctx context.Context, userID, date string, parts map[string][]models.RawSignalEvent, now time.Time) error {
	notifications := parts[models.EventTypeNotification]
	screenOns := parts[models.EventTypeScreenOn]
	appOpens := parts[models.EventTypeAppOpened]
	if len(notifications) == 0 && len(screenOns) == 0 && len(appOpens) == 0 {
		return nil
	}

	var screenMinutes float64
	for _, e := range screenOns {
		screenMinutes += float64(e.Payload.DurationMs) / 60000
	}

	device := &models.DeviceSignal{
		UserID:            userID,
		Date:              date,
		NotificationCount: len(notifications),
		ScreenOnCount:     len(screenOns),
		AppOpenCount:      len(appOpens),
		ScreenTimeMinutes: screenMinutes,
		CreatedAt:         now,
	}

	if err := j.daily.SaveDeviceSignal(ctx, device); err != nil {
		return fmt.Errorf("failed to save device signal: %w", err)
	}
	return nil
}

// buildShadowCognition derives the friction heuristics from app open
// bursts and late-night screen spans, evaluated in the user's timezone.
func (j *DailyAggregationJob) buildShadowCognition(ctx context.Context, userID, date string, parts map[string][]models.RawSignalEvent, loc *time.Location, now time.Time) error {
	appOpens := parts[models.EventTypeAppOpened]
	screenOns := parts[models.EventTypeScreenOn]
	if len(appOpens) == 0 && len(screenOns) == 0 {
		return nil
	}

	openTimes := make([]time.Time, 0, len(appOpens))
	for _, e := range appOpens {
		openTimes = append(openTimes, e.Timestamp)
	}
	friction := scoring.FrictionTaps(openTimes)

	spans := make([]scoring.ScreenSpan, 0, len(screenOns))
	for _, e := range screenOns {
		spans = append(spans, scoring.ScreenSpan{
			Start:    e.Timestamp,
			Duration: time.Duration(e.Payload.DurationMs) * time.Millisecond,
		})
	}

	compulsive, hesitation, avoidance := scoring.ShadowDerived(friction)

	shadow := &models.ShadowCognition{
		UserID:               userID,
		Date:                 date,
		FrictionTaps:         friction,
		BedtimeScrollMinutes: scoring.BedtimeScrollMinutes(spans, loc),
		CompulsiveOpenCount:  compulsive,
		HesitationTaps:       hesitation,
		AvoidanceBehaviors:   avoidance,
		CreatedAt:            now,
	}

	if err := j.daily.SaveShadowCognition(ctx, shadow); err != nil {
		return fmt.Errorf("failed to save shadow cognition: %w", err)
	}
	return nil
}

// buildObscuraPatterns counts camera captures, splitting out the
// late-night ones by the user's local hour.
func (j *DailyAggregationJob) buildObscuraPatterns(ctx context.Context, userID, date string, parts map[string][]models.RawSignalEvent, loc *time.Location, now time.Time) error {
	captures := parts[models.EventTypeCameraCapture]
	if len(captures) == 0 {
		return nil
	}

	var nightCaptures int
	for _, e := range captures {
		if scoring.IsNightHour(e.Timestamp.In(loc).Hour()) {
			nightCaptures++
		}
	}

	obscura := &models.ObscuraPatterns{
		UserID:        userID,
		Date:          date,
		CaptureCount:  len(captures),
		NightCaptures: nightCaptures,
		CreatedAt:     now,
	}

	if err := j.daily.SaveObscuraPatterns(ctx, obscura); err != nil {
		return fmt.Errorf("failed to save obscura patterns: %w", err)
	}
	return nil
}

func (j *DailyAggregationJob) recordOutcome(outcome string) {
	if j.metrics != nil {
		j.metrics.RecordUserOutcome(j.Name(), outcome)
	}
}
