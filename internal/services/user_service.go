package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auralog/internal/database"
	"auralog/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page size for batch job iteration over the user set. The nightly jobs
// never load the full user list at once.
const userPageSize = 200

// ErrUserNotFound is returned when a user has no registry document.
var ErrUserNotFound = errors.New("user not found")

// UserService manages the user registry and device tokens
type UserService struct {
	mongoDB *database.MongoDB
}

// NewUserService creates a new user service
func NewUserService(mongoDB *database.MongoDB) *UserService {
	return &UserService{mongoDB: mongoDB}
}

func (s *UserService) users() *mongo.Collection {
	return s.mongoDB.Collection(database.CollectionUsers)
}

func (s *UserService) devices() *mongo.Collection {
	return s.mongoDB.Collection(database.CollectionUserDevices)
}

// Touch upserts the user registry document on signal ingest, keeping
// lastSeenAt current so batch jobs can skip long-idle users.
func (s *UserService) Touch(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := s.users().UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set":         bson.M{"lastSeenAt": now},
			"$setOnInsert": bson.M{"userId": userID, "createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Get returns a user's registry document.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// SetTimezone stores the user's IANA timezone, used for local-hour
// heuristics in the aggregator.
func (s *UserService) SetTimezone(ctx context.Context, userID, tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	_, err := s.users().UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"timezone": tz}},
	)
	return err
}

// Location resolves a user's timezone, falling back to UTC.
func (s *UserService) Location(ctx context.Context, userID string) *time.Location {
	user, err := s.Get(ctx, userID)
	if err != nil || user.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ForEachUser iterates the user registry in pages and calls fn for every
// user ID. fn errors are the caller's concern; iteration stops only on
// query failure or context cancellation.
func (s *UserService) ForEachUser(ctx context.Context, fn func(userID string) error) error {
	var lastID string

	for {
		filter := bson.M{}
		if lastID != "" {
			filter["userId"] = bson.M{"$gt": lastID}
		}

		cursor, err := s.users().Find(ctx, filter,
			options.Find().
				SetSort(bson.D{{Key: "userId", Value: 1}}).
				SetLimit(userPageSize).
				SetProjection(bson.M{"userId": 1}),
		)
		if err != nil {
			return fmt.Errorf("failed to page users: %w", err)
		}

		var page []models.User
		if err := cursor.All(ctx, &page); err != nil {
			return fmt.Errorf("failed to decode user page: %w", err)
		}
		if len(page) == 0 {
			return nil
		}

		for _, u := range page {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := fn(u.UserID); err != nil {
				return err
			}
			lastID = u.UserID
		}

		if len(page) < userPageSize {
			return nil
		}
	}
}

// RegisterDevice stores a push token for a user. Re-registering an existing
// token refreshes its lastSeenAt.
func (s *UserService) RegisterDevice(ctx context.Context, userID, token, platform string) error {
	now := time.Now().UTC()
	_, err := s.devices().UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{
			"$set":         bson.M{"userId": userID, "platform": platform, "lastSeenAt": now},
			"$setOnInsert": bson.M{"registeredAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// UnregisterDevice removes a push token.
func (s *UserService) UnregisterDevice(ctx context.Context, userID, token string) error {
	res, err := s.devices().DeleteOne(ctx, bson.M{"userId": userID, "token": token})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeviceTokens returns all registered push tokens for a user.
func (s *UserService) DeviceTokens(ctx context.Context, userID string) ([]string, error) {
	cursor, err := s.devices().Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}

	var devices []models.UserDevice
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}
	return tokens, nil
}

// PruneTokens deletes device tokens the push gateway rejected as invalid.
func (s *UserService) PruneTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	res, err := s.devices().DeleteMany(ctx, bson.M{"token": bson.M{"$in": tokens}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
