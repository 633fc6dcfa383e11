package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CognitiveMirror is the daily composite summary combining mood, stress,
// energy and social metrics. One per (userId, date); read-only after the
// nightly build.
type CognitiveMirror struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"userId" json:"user_id"`
	Date   string             `bson:"date" json:"date"`

	MoodScore        float64 `bson:"moodScore" json:"mood_score"`               // 0-100
	StressIndex      float64 `bson:"stressIndex" json:"stress_index"`           // 0-100
	EnergyLevel      float64 `bson:"energyLevel" json:"energy_level"`           // exact inverse of stress
	SocialConnection float64 `bson:"socialConnection" json:"social_connection"` // voice activity proxy
	PurposeAlignment float64 `bson:"purposeAlignment" json:"purpose_alignment"`

	HighlightInsights []string `bson:"highlightInsights" json:"highlight_insights"`

	VoiceEventCount int       `bson:"voiceEventCount" json:"voice_event_count"`
	RhythmState     string    `bson:"rhythmState,omitempty" json:"rhythm_state,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"created_at"`
}

// Predicted mood labels
const (
	MoodPositive    = "positive"
	MoodStable      = "stable"
	MoodChallenging = "challenging"
)

// EmotionForecast is the next-day mood prediction derived from the trailing
// 30 days of CognitiveMirror records. One per (userId, targetDate),
// superseded by the next nightly run, never updated in place by callers.
type EmotionForecast struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"user_id"`
	TargetDate string             `bson:"targetDate" json:"target_date"`

	PredictedMood      string   `bson:"predictedMood" json:"predicted_mood"`
	Confidence         float64  `bson:"confidence" json:"confidence"` // 0-1
	InfluencingFactors []string `bson:"influencingFactors" json:"influencing_factors"`
	RecommendedActions []string `bson:"recommendedActions" json:"recommended_actions"`

	AvgRecentStress float64   `bson:"avgRecentStress" json:"avg_recent_stress"`
	TrendSlope      float64   `bson:"trendSlope" json:"trend_slope"`
	CreatedAt       time.Time `bson:"createdAt" json:"created_at"`
}
