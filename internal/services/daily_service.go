package services

import (
	"context"
	"fmt"
	"time"

	"auralog/internal/database"
	"auralog/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DailyRecordService owns the per-user, per-day aggregate collections
// written by the nightly aggregator. All writes are (userId, date) upserts,
// so re-running a day replaces the record instead of duplicating it.
type DailyRecordService struct {
	mongoDB *database.MongoDB
	metrics *Metrics
}

// NewDailyRecordService creates a new daily record service
func NewDailyRecordService(mongoDB *database.MongoDB, metrics *Metrics) *DailyRecordService {
	return &DailyRecordService{
		mongoDB: mongoDB,
		metrics: metrics,
	}
}

// upsertDaily writes one per-day record keyed (userId, date).
func (s *DailyRecordService) upsertDaily(ctx context.Context, collection, userID, date string, doc interface{}) error {
	_, err := s.mongoDB.Collection(collection).ReplaceOne(ctx,
		bson.M{"userId": userID, "date": date},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s for %s/%s: %w", collection, userID, date, err)
	}
	if s.metrics != nil {
		s.metrics.RecordWrite(collection)
	}
	return nil
}

// SaveRhythmMap upserts a day's rhythm record.
func (s *DailyRecordService) SaveRhythmMap(ctx context.Context, r *models.RhythmMap) error {
	r.CreatedAt = time.Now().UTC()
	return s.upsertDaily(ctx, database.CollectionRhythmMaps, r.UserID, r.Date, r)
}

// SaveHealthEcho upserts a day's health record.
func (s *DailyRecordService) SaveHealthEcho(ctx context.Context, h *models.HealthEcho) error {
	h.CreatedAt = time.Now().UTC()
	return s.upsertDaily(ctx, database.CollectionHealthEchoes, h.UserID, h.Date, h)
}

// SaveDeviceSignal upserts a day's device telemetry record.
func (s *DailyRecordService) SaveDeviceSignal(ctx context.Context, d *models.DeviceSignal) error {
	d.CreatedAt = time.Now().UTC()
	return s.upsertDaily(ctx, database.CollectionDeviceSignals, d.UserID, d.Date, d)
}

// SaveShadowCognition upserts a day's friction metrics record.
func (s *DailyRecordService) SaveShadowCognition(ctx context.Context, sc *models.ShadowCognition) error {
	sc.CreatedAt = time.Now().UTC()
	return s.upsertDaily(ctx, database.CollectionShadowCognition, sc.UserID, sc.Date, sc)
}

// SaveObscuraPatterns upserts a day's camera capture record.
func (s *DailyRecordService) SaveObscuraPatterns(ctx context.Context, o *models.ObscuraPatterns) error {
	o.CreatedAt = time.Now().UTC()
	return s.upsertDaily(ctx, database.CollectionObscuraPatterns, o.UserID, o.Date, o)
}

func (s *DailyRecordService) findDaily(ctx context.Context, collection, userID, date string, out interface{}) (bool, error) {
	err := s.mongoDB.Collection(collection).FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s for %s/%s: %w", collection, userID, date, err)
	}
	return true, nil
}

// GetRhythmMap loads a day's rhythm record; found=false when absent.
func (s *DailyRecordService) GetRhythmMap(ctx context.Context, userID, date string) (*models.RhythmMap, bool, error) {
	var r models.RhythmMap
	found, err := s.findDaily(ctx, database.CollectionRhythmMaps, userID, date, &r)
	return &r, found, err
}

// GetHealthEcho loads a day's health record; found=false when absent.
func (s *DailyRecordService) GetHealthEcho(ctx context.Context, userID, date string) (*models.HealthEcho, bool, error) {
	var h models.HealthEcho
	found, err := s.findDaily(ctx, database.CollectionHealthEchoes, userID, date, &h)
	return &h, found, err
}

// GetDeviceSignal loads a day's device telemetry record; found=false when absent.
func (s *DailyRecordService) GetDeviceSignal(ctx context.Context, userID, date string) (*models.DeviceSignal, bool, error) {
	var d models.DeviceSignal
	found, err := s.findDaily(ctx, database.CollectionDeviceSignals, userID, date, &d)
	return &d, found, err
}

// GetShadowCognition loads a day's friction record; found=false when absent.
func (s *DailyRecordService) GetShadowCognition(ctx context.Context, userID, date string) (*models.ShadowCognition, bool, error) {
	var sc models.ShadowCognition
	found, err := s.findDaily(ctx, database.CollectionShadowCognition, userID, date, &sc)
	return &sc, found, err
}

// AdjustRhythmMap writes the composite score and adjusted state computed by
// the rhythm score detector back onto the day's rhythm record.
func (s *DailyRecordService) AdjustRhythmMap(ctx context.Context, userID, date string, composite float64, adjustedState string) error {
	_, err := s.mongoDB.Collection(database.CollectionRhythmMaps).UpdateOne(ctx,
		bson.M{"userId": userID, "date": date},
		bson.M{"$set": bson.M{"compositeScore": composite, "adjustedState": adjustedState}},
	)
	return err
}
