package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rhythm states describing a day's sleep+movement balance
const (
	RhythmStable         = "Stable"
	RhythmOffRhythm      = "Off-Rhythm"
	RhythmOverstimulated = "Overstimulated"
)

// DateLayout is the canonical per-day key format. Daily records are keyed
// (userId, date) with a unique index so re-running a nightly job upserts
// instead of duplicating.
const DateLayout = "2006-01-02"

// DateKey formats t as a per-day record key in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// RhythmMap is the per-day sleep/movement summary written by the nightly
// aggregator. CompositeScore and AdjustedState are filled in afterwards by
// the rhythm score detector.
type RhythmMap struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"userId" json:"user_id"`
	Date             string             `bson:"date" json:"date"`
	SleepHours       float64            `bson:"sleepHours" json:"sleep_hours"`
	MovementScore    float64            `bson:"movementScore" json:"movement_score"`
	MotionEventCount int                `bson:"motionEventCount" json:"motion_event_count"`
	RhythmState      string             `bson:"rhythmState" json:"rhythm_state"`

	CompositeScore *float64 `bson:"compositeScore,omitempty" json:"composite_score,omitempty"`
	AdjustedState  string   `bson:"adjustedState,omitempty" json:"adjusted_state,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// HealthEcho is the per-day physiological rollup.
type HealthEcho struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"user_id"`
	Date          string             `bson:"date" json:"date"`
	HeartRateAvg  float64            `bson:"heartRateAvg" json:"heart_rate_avg"`
	MovementScore float64            `bson:"movementScore" json:"movement_score"`
	WellnessIndex float64            `bson:"wellnessIndex" json:"wellness_index"`
	StepsCount    int                `bson:"stepsCount" json:"steps_count"`
	StressIndex   float64            `bson:"stressIndex" json:"stress_index"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
}

// DeviceSignal is the per-day device telemetry rollup.
type DeviceSignal struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"userId" json:"user_id"`
	Date              string             `bson:"date" json:"date"`
	NotificationCount int                `bson:"notificationCount" json:"notification_count"`
	ScreenOnCount     int                `bson:"screenOnCount" json:"screen_on_count"`
	AppOpenCount      int                `bson:"appOpenCount" json:"app_open_count"`
	ScreenTimeMinutes float64            `bson:"screenTimeMinutes" json:"screen_time_minutes"`
	CreatedAt         time.Time          `bson:"createdAt" json:"created_at"`
}

// ShadowCognition holds the per-day friction/compulsion heuristics derived
// from rapid app switching and late-night screen use. The derived counters
// are fixed multiples of frictionTaps, not independent measurements.
type ShadowCognition struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID               string             `bson:"userId" json:"user_id"`
	Date                 string             `bson:"date" json:"date"`
	FrictionTaps         int                `bson:"frictionTaps" json:"friction_taps"`
	BedtimeScrollMinutes float64            `bson:"bedtimeScrollMinutes" json:"bedtime_scroll_minutes"`
	CompulsiveOpenCount  float64            `bson:"compulsiveOpenCount" json:"compulsive_open_count"`
	HesitationTaps       float64            `bson:"hesitationTaps" json:"hesitation_taps"`
	AvoidanceBehaviors   float64            `bson:"avoidanceBehaviors" json:"avoidance_behaviors"`
	CreatedAt            time.Time          `bson:"createdAt" json:"created_at"`
}

// ObscuraPatterns is the per-day camera capture rollup.
type ObscuraPatterns struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"user_id"`
	Date          string             `bson:"date" json:"date"`
	CaptureCount  int                `bson:"captureCount" json:"capture_count"`
	NightCaptures int                `bson:"nightCaptures" json:"night_captures"` // local hour in [22,24) or [0,6]
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
}
