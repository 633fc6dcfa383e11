package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"auralog/internal/database"
	"auralog/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Batched writes are chunked; there is no atomicity across chunks. A crash
// mid-batch leaves the earlier chunks written.
const ingestBatchSize = 400

var knownEventTypes = map[string]struct{}{
	models.EventTypeMotion:        {},
	models.EventTypeNotification:  {},
	models.EventTypeScreenOn:      {},
	models.EventTypeAppOpened:     {},
	models.EventTypeCameraCapture: {},
	models.EventTypeVoice:         {},
	models.EventTypeSleepMarker:   {},
	models.EventTypeHeartRate:     {},
	models.EventTypeSteps:         {},
}

// ErrEmptyBatch is returned when an ingest request carries no events.
var ErrEmptyBatch = errors.New("ingest batch contains no events")

// SignalService handles raw signal ingest and window reads
type SignalService struct {
	mongoDB *database.MongoDB
	metrics *Metrics
}

// NewSignalService creates a new signal service
func NewSignalService(mongoDB *database.MongoDB, metrics *Metrics) *SignalService {
	return &SignalService{
		mongoDB: mongoDB,
		metrics: metrics,
	}
}

func (s *SignalService) collection() *mongo.Collection {
	return s.mongoDB.Collection(database.CollectionRawSignals)
}

// IngestBatch validates and stores a batch of raw signal events for a user.
// Invalid events are counted and dropped; valid ones are written in chunks.
func (s *SignalService) IngestBatch(ctx context.Context, userID string, events []models.IngestEvent) (accepted, rejected int, err error) {
	if len(events) == 0 {
		return 0, 0, ErrEmptyBatch
	}

	docs := make([]interface{}, 0, len(events))
	for _, e := range events {
		if _, ok := knownEventTypes[e.EventType]; !ok || e.Timestamp.IsZero() {
			rejected++
			continue
		}

		eventID := e.EventID
		if eventID == "" {
			eventID = uuid.New().String()
		}

		docs = append(docs, models.RawSignalEvent{
			EventID:   eventID,
			UserID:    userID,
			Timestamp: e.Timestamp.UTC(),
			EventType: e.EventType,
			Payload:   e.Payload,
		})
	}

	for start := 0; start < len(docs); start += ingestBatchSize {
		end := start + ingestBatchSize
		if end > len(docs) {
			end = len(docs)
		}

		// Unordered so one duplicate eventId does not sink the chunk.
		res, insErr := s.collection().InsertMany(ctx, docs[start:end], options.InsertMany().SetOrdered(false))
		if res != nil {
			accepted += len(res.InsertedIDs)
		}
		if insErr != nil {
			if mongo.IsDuplicateKeyError(insErr) {
				// Re-sent events are fine; everything else in the chunk landed.
				continue
			}
			return accepted, rejected, fmt.Errorf("failed to insert signal batch: %w", insErr)
		}
	}

	if s.metrics != nil {
		s.metrics.SignalsIngested.Add(float64(accepted))
		s.metrics.SignalsRejected.Add(float64(rejected))
	}

	return accepted, rejected, nil
}

// EventsInWindow returns a user's raw events in [start, end), sorted by
// timestamp ascending.
func (s *SignalService) EventsInWindow(ctx context.Context, userID string, start, end time.Time) ([]models.RawSignalEvent, error) {
	filter := bson.M{
		"userId": userID,
		"timestamp": bson.M{
			"$gte": start,
			"$lt":  end,
		},
	}

	cursor, err := s.collection().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query signal window: %w", err)
	}

	var events []models.RawSignalEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode signal window: %w", err)
	}

	return events, nil
}

// CountEventsSince returns how many events a user produced since the cutoff.
func (s *SignalService) CountEventsSince(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	return s.collection().CountDocuments(ctx, bson.M{
		"userId":    userID,
		"timestamp": bson.M{"$gte": cutoff},
	})
}

// PartitionByType splits a window of events by event type.
func PartitionByType(events []models.RawSignalEvent) map[string][]models.RawSignalEvent {
	parts := make(map[string][]models.RawSignalEvent)
	for _, e := range events {
		parts[e.EventType] = append(parts[e.EventType], e)
	}
	return parts
}

// PruneBefore deletes raw signals older than the cutoff. Derived records
// are kept; only the raw event log is trimmed.
func (s *SignalService) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.collection().DeleteMany(ctx, bson.M{"timestamp": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	if res.DeletedCount > 0 {
		log.Printf("🧹 [SIGNALS] Pruned %d raw signals older than %s", res.DeletedCount, cutoff.Format(time.RFC3339))
	}
	return res.DeletedCount, nil
}
