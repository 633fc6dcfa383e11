package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"auralog/internal/database"
	"auralog/internal/models"
	"auralog/internal/scoring"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PatternService hosts the three pattern detectors. Rhythm score and
// behavioral recovery run on record-created events; the life event scan is
// driven by a weekly job. Detections append to their event collections and
// notify the user's devices. There is no guard against duplicate
// detections when an event is delivered twice.
type PatternService struct {
	mongoDB    *database.MongoDB
	daily      *DailyRecordService
	mirrors    *MirrorService
	push       *PushService
	thresholds ThresholdsSource
	metrics    *Metrics
}

// NewPatternService creates a new pattern service
func NewPatternService(
	mongoDB *database.MongoDB,
	daily *DailyRecordService,
	mirrors *MirrorService,
	push *PushService,
	thresholds ThresholdsSource,
	metrics *Metrics,
) *PatternService {
	return &PatternService{
		mongoDB:    mongoDB,
		daily:      daily,
		mirrors:    mirrors,
		push:       push,
		thresholds: thresholds,
		metrics:    metrics,
	}
}

// SubscribeTo wires the detectors onto the record event bus.
func (s *PatternService) SubscribeTo(bus *PubSubService) {
	bus.Subscribe(EventRhythmMapCreated, func(ctx context.Context, ev *RecordEvent) {
		if err := s.OnRhythmMapCreated(ctx, ev.UserID, ev.Date); err != nil {
			log.Printf("⚠️ [PATTERN] Rhythm score detector failed for %s/%s: %v", ev.UserID, ev.Date, err)
		}
	})
	bus.Subscribe(EventMirrorCreated, func(ctx context.Context, ev *RecordEvent) {
		if err := s.OnMirrorCreated(ctx, ev.UserID, ev.Date); err != nil {
			log.Printf("⚠️ [PATTERN] Recovery detector failed for %s/%s: %v", ev.UserID, ev.Date, err)
		}
	})
}

// OnRhythmMapCreated recomputes the day's composite rhythm score and writes
// the adjusted state back onto the rhythm record. The wellness index comes
// from the day's health echo when one exists; otherwise its term
// contributes nothing.
func (s *PatternService) OnRhythmMapCreated(ctx context.Context, userID, date string) error {
	rhythm, found, err := s.daily.GetRhythmMap(ctx, userID, date)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("rhythm map %s/%s not found", userID, date)
	}

	var wellness *float64
	if echo, ok, err := s.daily.GetHealthEcho(ctx, userID, date); err == nil && ok {
		wellness = &echo.WellnessIndex
	}

	composite := scoring.RhythmComposite(rhythm.SleepHours, rhythm.MovementScore, wellness)
	adjusted := scoring.ReclassifyRhythm(composite, rhythm.RhythmState)

	if err := s.daily.AdjustRhythmMap(ctx, userID, date, composite, adjusted); err != nil {
		return fmt.Errorf("failed to adjust rhythm map %s/%s: %w", userID, date, err)
	}

	if adjusted != rhythm.RhythmState {
		log.Printf("🔄 [PATTERN] Rhythm state for %s/%s adjusted %s → %s (composite %.1f)",
			userID, date, rhythm.RhythmState, adjusted, composite)
	}
	return nil
}

// OnMirrorCreated runs the behavioral recovery detector over the trailing
// 7 days ending at the new mirror record.
func (s *PatternService) OnMirrorCreated(ctx context.Context, userID, date string) error {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return fmt.Errorf("bad mirror date %q: %w", date, err)
	}

	mirrors, err := s.mirrors.History(ctx, userID, day.AddDate(0, 0, -6), 7)
	if err != nil {
		return err
	}

	// History arrives most recent first; the detector wants oldest first
	// with the triggering record last.
	window := make([]scoring.MoodStress, 0, len(mirrors))
	for i := len(mirrors) - 1; i >= 0; i-- {
		m := mirrors[i]
		if m.Date > date {
			continue // ignore anything newer than the triggering record
		}
		window = append(window, scoring.MoodStress{
			Date:   m.Date,
			Mood:   m.MoodScore,
			Stress: m.StressIndex,
		})
	}

	result, ok := scoring.DetectRecovery(window, s.thresholds.Get())
	if !ok {
		return nil
	}

	event := &models.RecoveryEvent{
		UserID:       userID,
		Date:         date,
		RecoveryType: result.RecoveryType,
		Improvement:  result.Improvement,
		TroughDate:   result.TroughDate,
		TroughScore:  result.TroughScore,
		DetectedAt:   time.Now().UTC(),
	}

	if _, err := s.mongoDB.Collection(database.CollectionRecoveryEvents).InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert recovery event: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordDetectorHit("recovery")
	}
	log.Printf("💚 [PATTERN] Recovery detected for %s: %s, +%.0f from trough on %s",
		userID, result.RecoveryType, result.Improvement, result.TroughDate)

	s.notify(ctx, userID, "You're bouncing back",
		"Your recent days show a real recovery from a rough patch. Nice work.")
	return nil
}

// ScanLifeEvents compares the first and second halves of the trailing four
// weeks of mirrors and records a life event when the averaged mood or
// stress shifted past its threshold.
func (s *PatternService) ScanLifeEvents(ctx context.Context, userID string, now time.Time) (*models.LifeEvent, error) {
	since := now.AddDate(0, 0, -28)
	mirrors, err := s.mirrors.History(ctx, userID, since, 28)
	if err != nil {
		return nil, err
	}
	if len(mirrors) < 14 {
		return nil, nil // not enough history for a half-vs-half comparison
	}

	// Oldest first for the half split.
	window := make([]scoring.MoodStress, 0, len(mirrors))
	for i := len(mirrors) - 1; i >= 0; i-- {
		window = append(window, scoring.MoodStress{
			Date:   mirrors[i].Date,
			Mood:   mirrors[i].MoodScore,
			Stress: mirrors[i].StressIndex,
		})
	}

	m1, s1, m2, s2 := scoring.HalfAverages(window)
	moodShift := m2 - m1
	stressShift := s2 - s1

	category, ok := scoring.ClassifyLifeEvent(moodShift, stressShift, s.thresholds.Get())
	if !ok {
		return nil, nil
	}

	event := &models.LifeEvent{
		UserID:      userID,
		Category:    category,
		MoodShift:   moodShift,
		StressShift: stressShift,
		WindowStart: window[0].Date,
		WindowEnd:   window[len(window)-1].Date,
		DetectedAt:  time.Now().UTC(),
	}

	if _, err := s.mongoDB.Collection(database.CollectionLifeEvents).InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to insert life event: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordDetectorHit("life_event")
	}
	log.Printf("🌊 [PATTERN] Life event for %s: %s (mood %+.1f, stress %+.1f)",
		userID, category, moodShift, stressShift)

	s.notify(ctx, userID, "Something shifted",
		"Your last few weeks look different from the ones before. Your insights have the details.")
	return event, nil
}

// RecentEvents returns a user's recent recovery and life events, newest
// first.
func (s *PatternService) RecentEvents(ctx context.Context, userID string, limit int64) ([]models.RecoveryEvent, []models.LifeEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "detectedAt", Value: -1}}).SetLimit(limit)

	var recoveries []models.RecoveryEvent
	cursor, err := s.mongoDB.Collection(database.CollectionRecoveryEvents).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := cursor.All(ctx, &recoveries); err != nil {
		return nil, nil, err
	}

	var lifeEvents []models.LifeEvent
	cursor, err = s.mongoDB.Collection(database.CollectionLifeEvents).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := cursor.All(ctx, &lifeEvents); err != nil {
		return nil, nil, err
	}

	return recoveries, lifeEvents, nil
}

func (s *PatternService) notify(ctx context.Context, userID, title, body string) {
	if s.push == nil {
		return
	}
	if err := s.push.SendToUser(ctx, userID, PushPayload{Title: title, Body: body}); err != nil {
		log.Printf("⚠️ [PATTERN] Push notification failed for %s: %v", userID, err)
	}
}
