package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recovery types
const (
	RecoveryEmotional    = "emotional"
	RecoveryStressRelief = "stress_relief"
)

// Life event categories, in classification priority order
const (
	LifeEventPositiveChange      = "positive_life_change"
	LifeEventChallengingEvent    = "challenging_life_event"
	LifeEventMajorStressShift    = "major_stress_shift"
	LifeEventSignificantMoodMove = "significant_mood_change"
	LifeEventUnknownTransition   = "unknown_transition"
)

// RecoveryEvent records a detected rebound from a low combined mood-stress
// trough within a 7-day window. Append-only.
type RecoveryEvent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"user_id"`
	Date         string             `bson:"date" json:"date"` // mirror date that triggered detection
	RecoveryType string             `bson:"recoveryType" json:"recovery_type"`
	Improvement  float64            `bson:"improvement" json:"improvement"` // combined-score gain from trough
	TroughDate   string             `bson:"troughDate" json:"trough_date"`
	TroughScore  float64            `bson:"troughScore" json:"trough_score"`
	DetectedAt   time.Time          `bson:"detectedAt" json:"detected_at"`
}

// LifeEvent records a multi-week shift in averaged mood/stress exceeding
// fixed thresholds. Append-only.
type LifeEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"user_id"`
	Category    string             `bson:"category" json:"category"`
	MoodShift   float64            `bson:"moodShift" json:"mood_shift"`
	StressShift float64            `bson:"stressShift" json:"stress_shift"`
	WindowStart string             `bson:"windowStart" json:"window_start"`
	WindowEnd   string             `bson:"windowEnd" json:"window_end"`
	DetectedAt  time.Time          `bson:"detectedAt" json:"detected_at"`
}
