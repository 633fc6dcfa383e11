package handlers

import (
	"errors"
	"log"

	"auralog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ForecastHandler handles emotion forecast read requests
type ForecastHandler struct {
	forecasts *services.ForecastService
}

// NewForecastHandler creates a new forecast handler
func NewForecastHandler(forecasts *services.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecasts: forecasts}
}

// Latest returns the most recent forecast for the authenticated user
// GET /api/forecast/latest
func (h *ForecastHandler) Latest(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	forecast, err := h.forecasts.Latest(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoForecast) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No forecast yet; at least 7 days of history are required",
			})
		}
		log.Printf("❌ [FORECAST] Failed to load latest for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load forecast",
		})
	}

	return c.JSON(forecast)
}
