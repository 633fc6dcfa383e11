package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"auralog/internal/database"
	"auralog/internal/models"
	"auralog/internal/scoring"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoMirror is returned when a user has no cognitive mirror records yet.
var ErrNoMirror = errors.New("no cognitive mirror records")

// MirrorService builds and serves the daily cognitive mirror composites.
type MirrorService struct {
	mongoDB    *database.MongoDB
	signals    *SignalService
	daily      *DailyRecordService
	pubsub     *PubSubService
	sentiment  scoring.SentimentAnalyzer
	thresholds ThresholdsSource
	metrics    *Metrics
}

// ThresholdsSource supplies the current scoring thresholds. Satisfied by
// config.ThresholdsHolder.
type ThresholdsSource interface {
	Get() scoring.Thresholds
}

// NewMirrorService creates a new mirror service
func NewMirrorService(
	mongoDB *database.MongoDB,
	signals *SignalService,
	daily *DailyRecordService,
	pubsub *PubSubService,
	sentiment scoring.SentimentAnalyzer,
	thresholds ThresholdsSource,
	metrics *Metrics,
) *MirrorService {
	return &MirrorService{
		mongoDB:    mongoDB,
		signals:    signals,
		daily:      daily,
		pubsub:     pubsub,
		sentiment:  sentiment,
		thresholds: thresholds,
		metrics:    metrics,
	}
}

func (s *MirrorService) collection() *mongo.Collection {
	return s.mongoDB.Collection(database.CollectionCognitiveMirrors)
}

// BuildForDay composes and stores the cognitive mirror for one user and
// day. The day's voice events, device signal, shadow cognition and rhythm
// record are fetched in parallel; missing inputs degrade to their
// baselines rather than failing the build. A day with no inputs at all
// produces no mirror and returns (nil, nil).
func (s *MirrorService) BuildForDay(ctx context.Context, userID string, day time.Time) (*models.CognitiveMirror, error) {
	date := models.DateKey(day)
	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var (
		wg     sync.WaitGroup
		events []models.RawSignalEvent
		device *models.DeviceSignal
		shadow *models.ShadowCognition
		rhythm *models.RhythmMap

		eventsErr, deviceErr, shadowErr, rhythmErr error
		deviceOK, shadowOK, rhythmOK               bool
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		events, eventsErr = s.signals.EventsInWindow(ctx, userID, dayStart, dayEnd)
	}()
	go func() {
		defer wg.Done()
		device, deviceOK, deviceErr = s.daily.GetDeviceSignal(ctx, userID, date)
	}()
	go func() {
		defer wg.Done()
		shadow, shadowOK, shadowErr = s.daily.GetShadowCognition(ctx, userID, date)
	}()
	go func() {
		defer wg.Done()
		rhythm, rhythmOK, rhythmErr = s.daily.GetRhythmMap(ctx, userID, date)
	}()
	wg.Wait()

	for _, err := range []error{eventsErr, deviceErr, shadowErr, rhythmErr} {
		if err != nil {
			return nil, fmt.Errorf("failed to fetch mirror inputs for %s/%s: %w", userID, date, err)
		}
	}

	// Nothing captured and nothing aggregated for this day: no mirror.
	if len(events) == 0 && !deviceOK && !shadowOK && !rhythmOK {
		return nil, nil
	}

	in := scoring.MirrorInputs{}
	for _, e := range events {
		if e.EventType == models.EventTypeVoice {
			in.Sentiments = append(in.Sentiments, s.sentiment.Score(e.Payload.Transcript))
		}
	}
	if deviceOK {
		in.NotificationCount = device.NotificationCount
		in.ScreenTimeMinutes = device.ScreenTimeMinutes
	}
	if shadowOK {
		in.FrictionTaps = shadow.FrictionTaps
	}
	if rhythmOK {
		in.RhythmState = rhythm.RhythmState
	}

	scores := scoring.ComposeMirror(in, s.thresholds.Get())

	mirror := &models.CognitiveMirror{
		UserID:            userID,
		Date:              date,
		MoodScore:         scores.MoodScore,
		StressIndex:       scores.StressIndex,
		EnergyLevel:       scores.EnergyLevel,
		SocialConnection:  scores.SocialConnection,
		PurposeAlignment:  scores.PurposeAlignment,
		HighlightInsights: scores.Highlights,
		VoiceEventCount:   len(in.Sentiments),
		RhythmState:       in.RhythmState,
		CreatedAt:         time.Now().UTC(),
	}

	_, err := s.collection().ReplaceOne(ctx,
		bson.M{"userId": userID, "date": date},
		mirror,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cognitive mirror for %s/%s: %w", userID, date, err)
	}
	if s.metrics != nil {
		s.metrics.RecordWrite(database.CollectionCognitiveMirrors)
	}

	if s.pubsub != nil {
		if err := s.pubsub.Publish(ctx, EventMirrorCreated, userID, date); err != nil {
			log.Printf("⚠️ [MIRROR] Failed to publish mirror event for %s/%s: %v", userID, date, err)
		}
	}

	return mirror, nil
}

// Latest returns the most recent mirror record for a user.
func (s *MirrorService) Latest(ctx context.Context, userID string) (*models.CognitiveMirror, error) {
	var mirror models.CognitiveMirror
	err := s.collection().FindOne(ctx,
		bson.M{"userId": userID},
		options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}}),
	).Decode(&mirror)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoMirror
		}
		return nil, fmt.Errorf("failed to load latest mirror: %w", err)
	}
	return &mirror, nil
}

// History returns up to limit mirror records for a user with date >= since,
// most recent first.
func (s *MirrorService) History(ctx context.Context, userID string, since time.Time, limit int64) ([]models.CognitiveMirror, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": models.DateKey(since)},
	}

	cursor, err := s.collection().Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "date", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query mirror history: %w", err)
	}

	var mirrors []models.CognitiveMirror
	if err := cursor.All(ctx, &mirrors); err != nil {
		return nil, fmt.Errorf("failed to decode mirror history: %w", err)
	}
	return mirrors, nil
}

// GetByDate returns the mirror record for a specific day.
func (s *MirrorService) GetByDate(ctx context.Context, userID, date string) (*models.CognitiveMirror, error) {
	var mirror models.CognitiveMirror
	err := s.collection().FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&mirror)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoMirror
		}
		return nil, fmt.Errorf("failed to load mirror: %w", err)
	}
	return &mirror, nil
}
