package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB wraps the MongoDB client and database
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	dbName   string
}

// Collection names
const (
	CollectionRawSignals = "raw_signals"

	// Per-user, per-day derived records
	CollectionRhythmMaps      = "rhythm_maps"
	CollectionHealthEchoes    = "health_echoes"
	CollectionDeviceSignals   = "device_signals"
	CollectionShadowCognition = "shadow_cognition"
	CollectionObscuraPatterns = "obscura_patterns"

	CollectionCognitiveMirrors = "cognitive_mirrors"
	CollectionEmotionForecasts = "emotion_forecasts"

	// Append-only pattern detector output
	CollectionRecoveryEvents = "recovery_events"
	CollectionLifeEvents     = "life_events"

	CollectionUsers       = "users"
	CollectionUserDevices = "user_devices"
)

// NewMongoDB creates a new MongoDB connection with connection pooling
func NewMongoDB(uri string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	dbName := extractDBName(uri)
	if dbName == "" {
		dbName = "auralog"
	}

	db := &MongoDB{
		client:   client,
		database: client.Database(dbName),
		dbName:   dbName,
	}

	log.Printf("✅ Connected to MongoDB database: %s", dbName)

	return db, nil
}

// extractDBName extracts the database name from MongoDB URI
func extractDBName(uri string) string {
	// mongodb://localhost:27017/auralog?authSource=admin -> auralog
	lastSlash := -1
	questionMark := -1

	for i, c := range uri {
		if c == '/' {
			lastSlash = i
		}
		if c == '?' && questionMark == -1 {
			questionMark = i
		}
	}

	if lastSlash != -1 {
		start := lastSlash + 1
		end := len(uri)
		if questionMark != -1 && questionMark > lastSlash {
			end = questionMark
		}
		if start < end {
			dbName := uri[start:end]
			if dbName != "" {
				return dbName
			}
		}
	}

	return "auralog"
}

// dailyRecordIndexes is the index set shared by every per-user, per-day
// collection. The unique (userId, date) key is what makes the nightly jobs
// idempotent: re-running a day upserts instead of duplicating.
func dailyRecordIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
}

// Initialize creates indexes for all collections
func (m *MongoDB) Initialize(ctx context.Context) error {
	log.Println("📦 Initializing MongoDB indexes...")

	// Raw signals: window scans per user, partitioned by event type
	if err := m.createIndexes(ctx, CollectionRawSignals, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "eventType", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "eventId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create raw_signals indexes: %w", err)
	}

	for _, name := range []string{
		CollectionRhythmMaps,
		CollectionHealthEchoes,
		CollectionDeviceSignals,
		CollectionShadowCognition,
		CollectionObscuraPatterns,
		CollectionCognitiveMirrors,
	} {
		if err := m.createIndexes(ctx, name, dailyRecordIndexes()); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	// Forecasts: one per user per target date
	if err := m.createIndexes(ctx, CollectionEmotionForecasts, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "targetDate", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create emotion_forecasts indexes: %w", err)
	}

	// Pattern events: append-only, read most-recent-first
	if err := m.createIndexes(ctx, CollectionRecoveryEvents, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "detectedAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create recovery_events indexes: %w", err)
	}
	if err := m.createIndexes(ctx, CollectionLifeEvents, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "detectedAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create life_events indexes: %w", err)
	}

	// Users collection indexes
	if err := m.createIndexes(ctx, CollectionUsers, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "lastSeenAt", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	// Device tokens: one document per token, pruned on push failure
	if err := m.createIndexes(ctx, CollectionUserDevices, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("failed to create user_devices indexes: %w", err)
	}

	log.Println("✅ MongoDB indexes initialized successfully")
	return nil
}

// createIndexes creates indexes for a collection
func (m *MongoDB) createIndexes(ctx context.Context, collectionName string, indexes []mongo.IndexModel) error {
	collection := m.database.Collection(collectionName)
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Collection returns a collection handle
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// Client returns the underlying MongoDB client
func (m *MongoDB) Client() *mongo.Client {
	return m.client
}

// Database returns the underlying MongoDB database
func (m *MongoDB) Database() *mongo.Database {
	return m.database
}

// Close closes the MongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	log.Println("🔌 Closing MongoDB connection...")
	return m.client.Disconnect(ctx)
}

// Ping checks if the database connection is alive
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}
