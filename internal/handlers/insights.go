package handlers

import (
	"errors"
	"log"

	"auralog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// InsightsHandler serves the rendered narrative and visual parameters
type InsightsHandler struct {
	narratives *services.NarrativeService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(narratives *services.NarrativeService) *InsightsHandler {
	return &InsightsHandler{narratives: narratives}
}

// Daily returns the narrative for the user's latest mirror
// GET /api/insights/daily
func (h *InsightsHandler) Daily(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	narrative, err := h.narratives.Daily(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoMirror) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No insights yet",
			})
		}
		log.Printf("❌ [INSIGHTS] Failed to render narrative for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load insights",
		})
	}

	return c.JSON(narrative)
}

// Visual returns the visual effect parameters for the user's latest mirror
// GET /api/insights/visual
func (h *InsightsHandler) Visual(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	params, err := h.narratives.Visual(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoMirror) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No insights yet",
			})
		}
		log.Printf("❌ [INSIGHTS] Failed to pick visual params for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load visual parameters",
		})
	}

	return c.JSON(params)
}
