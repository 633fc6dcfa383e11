package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Port     string
	MongoURI string
	RedisURL string

	// Scheduling (cron expressions, evaluated in ScheduleTimezone)
	ScheduleTimezone  string
	AggregationCron   string // nightly raw-signal rollup
	MirrorCron        string // nightly cognitive mirror build
	ForecastCron      string // nightly emotion forecast
	LifeEventCron     string // weekly life event scan
	RetentionCron     string // raw signal retention sweep

	// Raw signals older than this many days are pruned; derived records
	// are never deleted by the pipeline.
	RawRetentionDays int

	// Push notification gateway
	PushGatewayURL string
	PushAPIKey     string

	// Scoring thresholds file (YAML, hot-reloaded)
	ThresholdsPath string

	// Auth
	JWTSecret string

	// Superadmin configuration
	SuperadminUserIDs []string // User IDs allowed to trigger jobs manually
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	// Parse superadmin user IDs (comma-separated)
	superadminEnv := getEnv("SUPERADMIN_USER_IDS", "")
	var superadminUserIDs []string
	if superadminEnv != "" {
		superadminUserIDs = strings.Split(superadminEnv, ",")
		for i := range superadminUserIDs {
			superadminUserIDs[i] = strings.TrimSpace(superadminUserIDs[i])
		}
	}

	return &Config{
		Port:     getEnv("PORT", "3001"),
		MongoURI: getEnv("MONGODB_URI", ""),
		RedisURL: getEnv("REDIS_URL", ""),

		ScheduleTimezone: getEnv("SCHEDULE_TIMEZONE", "UTC"),
		AggregationCron:  getEnv("AGGREGATION_CRON", "0 1 * * *"),  // 01:00 daily
		MirrorCron:       getEnv("MIRROR_CRON", "30 1 * * *"),      // 01:30 daily, after aggregation
		ForecastCron:     getEnv("FORECAST_CRON", "0 2 * * *"),     // 02:00 daily, after mirror build
		LifeEventCron:    getEnv("LIFE_EVENT_CRON", "0 3 * * 0"),   // 03:00 Sundays
		RetentionCron:    getEnv("RETENTION_CRON", "30 2 * * *"),   // 02:30 daily
		RawRetentionDays: getIntEnv("RAW_RETENTION_DAYS", 90),

		PushGatewayURL: getEnv("PUSH_GATEWAY_URL", ""),
		PushAPIKey:     getEnv("PUSH_API_KEY", ""),

		ThresholdsPath: getEnv("THRESHOLDS_PATH", "thresholds.yaml"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		SuperadminUserIDs: superadminUserIDs,
	}
}

// IsSuperadmin reports whether the given user ID has superadmin access.
func (c *Config) IsSuperadmin(userID string) bool {
	for _, id := range c.SuperadminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
