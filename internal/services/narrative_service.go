package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auralog/internal/models"

	"github.com/patrickmn/go-cache"
)

// VisualParams drive the mood-reactive visual effects in the client. All
// values are picked from numeric ranges of the latest mirror; there is no
// rendering logic server-side.
type VisualParams struct {
	Date            string  `json:"date"`
	Palette         string  `json:"palette"`
	AnimationSpeed  float64 `json:"animation_speed"`  // 0.25 - 2.0
	ParticleDensity int     `json:"particle_density"` // 10 - 100
	GlowIntensity   float64 `json:"glow_intensity"`   // 0 - 1
}

// DailyNarrative is the rendered insight text for a day.
type DailyNarrative struct {
	Date     string   `json:"date"`
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
	Outlook  string   `json:"outlook,omitempty"`
}

// NarrativeService renders user-facing narrative text and visual
// parameters from the latest mirror and forecast. Responses are cached
// briefly; the underlying records change at most once a day.
type NarrativeService struct {
	mirrors   *MirrorService
	forecasts *ForecastService
	cache     *cache.Cache
}

// NewNarrativeService creates a new narrative service
func NewNarrativeService(mirrors *MirrorService, forecasts *ForecastService) *NarrativeService {
	return &NarrativeService{
		mirrors:   mirrors,
		forecasts: forecasts,
		cache:     cache.New(10*time.Minute, 5*time.Minute),
	}
}

// Daily renders the narrative for a user's most recent mirror.
func (s *NarrativeService) Daily(ctx context.Context, userID string) (*DailyNarrative, error) {
	cacheKey := "narrative:" + userID
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*DailyNarrative), nil
	}

	mirror, err := s.mirrors.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	narrative := &DailyNarrative{
		Date:     mirror.Date,
		Summary:  summarize(mirror),
		Insights: mirror.HighlightInsights,
	}

	if forecast, err := s.forecasts.Latest(ctx, userID); err == nil {
		narrative.Outlook = outlook(forecast)
	}

	s.cache.Set(cacheKey, narrative, cache.DefaultExpiration)
	return narrative, nil
}

// Visual picks the visual effect parameters for a user's latest mirror.
func (s *NarrativeService) Visual(ctx context.Context, userID string) (*VisualParams, error) {
	cacheKey := "visual:" + userID
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*VisualParams), nil
	}

	mirror, err := s.mirrors.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}

	params := VisualFromScores(mirror.MoodScore, mirror.StressIndex, mirror.EnergyLevel)
	params.Date = mirror.Date

	s.cache.Set(cacheKey, params, cache.DefaultExpiration)
	return params, nil
}

// Invalidate drops a user's cached renditions, used after a rebuild.
func (s *NarrativeService) Invalidate(userID string) {
	s.cache.Delete("narrative:" + userID)
	s.cache.Delete("visual:" + userID)
}

// VisualFromScores maps mirror scores onto visual effect parameters by
// fixed numeric bands.
func VisualFromScores(mood, stress, energy float64) *VisualParams {
	p := &VisualParams{}

	switch {
	case mood > 70:
		p.Palette = "sunrise"
	case mood < 30:
		p.Palette = "deep_ocean"
	default:
		p.Palette = "forest"
	}

	// Energy drives animation speed: 0 energy crawls, 100 races.
	p.AnimationSpeed = 0.25 + (energy/100)*1.75

	// Calm days are sparse, stressed days are dense.
	p.ParticleDensity = 10 + int(stress*0.9)

	p.GlowIntensity = mood / 100

	return p
}

func summarize(m *models.CognitiveMirror) string {
	var tone string
	switch {
	case m.MoodScore > 70:
		tone = "a genuinely good day"
	case m.MoodScore < 30:
		tone = "a hard day"
	default:
		tone = "a steady day"
	}

	var stress string
	switch {
	case m.StressIndex > 70:
		stress = "stress ran high"
	case m.StressIndex < 30:
		stress = "stress stayed low"
	default:
		stress = "stress was moderate"
	}

	summary := fmt.Sprintf("%s looked like %s, and %s.", humanDate(m.Date), tone, stress)
	if m.SocialConnection >= 50 {
		summary += " You had plenty of conversation in your day."
	}
	return summary
}

func outlook(f *models.EmotionForecast) string {
	var line string
	switch f.PredictedMood {
	case models.MoodPositive:
		line = "Tomorrow is shaping up well"
	case models.MoodChallenging:
		line = "Tomorrow may take more out of you"
	default:
		line = "Tomorrow looks steady"
	}

	if len(f.InfluencingFactors) > 0 {
		line += " (" + strings.Join(f.InfluencingFactors, "; ") + ")"
	}
	return line + "."
}

func humanDate(date string) string {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, Jan 2")
}
