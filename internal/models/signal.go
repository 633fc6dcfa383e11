package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Raw signal event types produced by the passive capture pipeline
const (
	EventTypeMotion        = "motion"
	EventTypeNotification  = "notification"
	EventTypeScreenOn      = "screen_on"
	EventTypeAppOpened     = "app_opened"
	EventTypeCameraCapture = "camera_capture"
	EventTypeVoice         = "voice_transcript"
	EventTypeSleepMarker   = "sleep_marker"
	EventTypeHeartRate     = "heart_rate"
	EventTypeSteps         = "steps"
)

// RawSignalEvent is an immutable passive signal captured on-device.
// Written once by the ingest endpoint, read by the nightly aggregator,
// never mutated.
type RawSignalEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventID   string             `bson:"eventId" json:"event_id"` // client or server generated UUID, dedupe key
	UserID    string             `bson:"userId" json:"user_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	EventType string             `bson:"eventType" json:"event_type"`
	Payload   SignalPayload      `bson:"payload" json:"payload"`
}

// SignalPayload carries the event-type-specific fields. Only the fields
// relevant to the event type are set.
type SignalPayload struct {
	DurationMs int64   `bson:"durationMs,omitempty" json:"duration_ms,omitempty"` // motion, screen_on
	Transcript string  `bson:"transcript,omitempty" json:"transcript,omitempty"`  // voice_transcript
	HeartRate  float64 `bson:"heartRate,omitempty" json:"heart_rate,omitempty"`   // heart_rate
	Steps      int     `bson:"steps,omitempty" json:"steps,omitempty"`            // steps
	SleepHours float64 `bson:"sleepHours,omitempty" json:"sleep_hours,omitempty"` // sleep_marker
	AppName    string  `bson:"appName,omitempty" json:"app_name,omitempty"`       // app_opened
}

// IngestRequest is the batch ingest body for POST /api/signals.
type IngestRequest struct {
	Events []IngestEvent `json:"events"`
}

// IngestEvent is a single raw signal in an ingest batch. The user ID comes
// from the authenticated caller, never from the body.
type IngestEvent struct {
	EventID   string        `json:"event_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	EventType string        `json:"event_type"`
	Payload   SignalPayload `json:"payload"`
}

// IngestResponse reports how many events were accepted.
type IngestResponse struct {
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}
