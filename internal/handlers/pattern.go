package handlers

import (
	"log"

	"auralog/internal/services"

	"github.com/gofiber/fiber/v2"
)

const maxRecentEvents = 50

// PatternHandler serves detected recovery and life events
type PatternHandler struct {
	patterns *services.PatternService
}

// NewPatternHandler creates a new pattern handler
func NewPatternHandler(patterns *services.PatternService) *PatternHandler {
	return &PatternHandler{patterns: patterns}
}

// Recent returns the user's recent recovery and life events
// GET /api/patterns/recent?limit=20
func (h *PatternHandler) Recent(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > maxRecentEvents {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be between 1 and 50",
		})
	}

	recoveries, lifeEvents, err := h.patterns.RecentEvents(c.Context(), userID, int64(limit))
	if err != nil {
		log.Printf("❌ [PATTERNS] Failed to load events for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load pattern events",
		})
	}

	return c.JSON(fiber.Map{
		"recovery_events": recoveries,
		"life_events":     lifeEvents,
	})
}
