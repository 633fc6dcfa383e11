package handlers

import (
	"errors"
	"log"
	"time"

	"auralog/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 90
)

// MirrorHandler handles cognitive mirror read requests
type MirrorHandler struct {
	mirrors *services.MirrorService
}

// NewMirrorHandler creates a new mirror handler
func NewMirrorHandler(mirrors *services.MirrorService) *MirrorHandler {
	return &MirrorHandler{mirrors: mirrors}
}

// Latest returns the most recent mirror for the authenticated user
// GET /api/mirror/latest
func (h *MirrorHandler) Latest(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	mirror, err := h.mirrors.Latest(c.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNoMirror) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No mirror records yet",
			})
		}
		log.Printf("❌ [MIRROR] Failed to load latest for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load mirror",
		})
	}

	return c.JSON(mirror)
}

// History returns the user's recent mirrors, newest first
// GET /api/mirror/history?days=30
func (h *MirrorHandler) History(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	days := c.QueryInt("days", defaultHistoryDays)
	if days < 1 || days > maxHistoryDays {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "days must be between 1 and 90",
		})
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	mirrors, err := h.mirrors.History(c.Context(), userID, since, int64(days))
	if err != nil {
		log.Printf("❌ [MIRROR] Failed to load history for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load mirror history",
		})
	}

	return c.JSON(fiber.Map{
		"mirrors": mirrors,
		"count":   len(mirrors),
	})
}
