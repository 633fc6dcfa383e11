package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the per-user registry document. Users are created implicitly on
// first signal ingest; the nightly batch jobs iterate this collection in
// pages rather than scanning raw signals.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"user_id"`
	Timezone   string             `bson:"timezone,omitempty" json:"timezone,omitempty"` // IANA name, used for local-hour heuristics
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
	LastSeenAt time.Time          `bson:"lastSeenAt" json:"last_seen_at"`
}

// UserDevice is a registered push notification target. Tokens that the push
// gateway reports as invalid are pruned.
type UserDevice struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"user_id"`
	Token        string             `bson:"token" json:"token"`
	Platform     string             `bson:"platform" json:"platform"` // ios, android, web
	RegisteredAt time.Time          `bson:"registeredAt" json:"registered_at"`
	LastSeenAt   time.Time          `bson:"lastSeenAt" json:"last_seen_at"`
}

// RegisterDeviceRequest is the body for POST /api/devices.
type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}
