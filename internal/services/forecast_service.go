package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auralog/internal/database"
	"auralog/internal/models"
	"auralog/internal/scoring"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoForecast is returned when a user has no forecast records.
var ErrNoForecast = errors.New("no emotion forecast records")

// ForecastService computes and serves next-day emotion forecasts from the
// trailing 30 days of cognitive mirror history.
type ForecastService struct {
	mongoDB    *database.MongoDB
	mirrors    *MirrorService
	thresholds ThresholdsSource
	metrics    *Metrics
}

// NewForecastService creates a new forecast service
func NewForecastService(mongoDB *database.MongoDB, mirrors *MirrorService, thresholds ThresholdsSource, metrics *Metrics) *ForecastService {
	return &ForecastService{
		mongoDB:    mongoDB,
		mirrors:    mirrors,
		thresholds: thresholds,
		metrics:    metrics,
	}
}

func (s *ForecastService) collection() *mongo.Collection {
	return s.mongoDB.Collection(database.CollectionEmotionForecasts)
}

// BuildForUser computes tomorrow's forecast for a user from their trailing
// 30 days of mirrors. Returns (nil, nil) when the user has fewer than the
// minimum history and is skipped; that is not an error.
func (s *ForecastService) BuildForUser(ctx context.Context, userID string, now time.Time) (*models.EmotionForecast, error) {
	since := now.AddDate(0, 0, -30)
	mirrors, err := s.mirrors.History(ctx, userID, since, 30)
	if err != nil {
		return nil, err
	}

	history := make([]scoring.DayMetric, 0, len(mirrors))
	for _, m := range mirrors {
		d, err := time.Parse(models.DateLayout, m.Date)
		if err != nil {
			continue // malformed date key, skip the record
		}
		history = append(history, scoring.DayMetric{
			Date:   d,
			Mood:   m.MoodScore,
			Stress: m.StressIndex,
		})
	}

	target := now.UTC().AddDate(0, 0, 1)
	result, ok := scoring.Forecast(history, target, s.thresholds.Get())
	if !ok {
		return nil, nil // below minimum history, skip silently
	}

	forecast := &models.EmotionForecast{
		UserID:             userID,
		TargetDate:         models.DateKey(target),
		PredictedMood:      result.PredictedMood,
		Confidence:         result.Confidence,
		InfluencingFactors: result.InfluencingFactors,
		RecommendedActions: result.RecommendedActions,
		AvgRecentStress:    result.AvgRecentStress,
		TrendSlope:         result.TrendSlope,
		CreatedAt:          time.Now().UTC(),
	}

	_, err = s.collection().ReplaceOne(ctx,
		bson.M{"userId": userID, "targetDate": forecast.TargetDate},
		forecast,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert forecast for %s/%s: %w", userID, forecast.TargetDate, err)
	}
	if s.metrics != nil {
		s.metrics.RecordWrite(database.CollectionEmotionForecasts)
	}

	return forecast, nil
}

// Latest returns the most recent forecast for a user.
func (s *ForecastService) Latest(ctx context.Context, userID string) (*models.EmotionForecast, error) {
	var forecast models.EmotionForecast
	err := s.collection().FindOne(ctx,
		bson.M{"userId": userID},
		options.FindOne().SetSort(bson.D{{Key: "targetDate", Value: -1}}),
	).Decode(&forecast)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoForecast
		}
		return nil, fmt.Errorf("failed to load latest forecast: %w", err)
	}
	return &forecast, nil
}
