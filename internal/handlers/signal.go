package handlers

import (
	"errors"
	"log"

	"auralog/internal/models"
	"auralog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SignalHandler handles raw signal ingest requests
type SignalHandler struct {
	signals *services.SignalService
	users   *services.UserService
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(signals *services.SignalService, users *services.UserService) *SignalHandler {
	return &SignalHandler{
		signals: signals,
		users:   users,
	}
}

// Ingest accepts a batch of raw signal events for the authenticated user
// POST /api/signals
func (h *SignalHandler) Ingest(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.IngestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Seen-user bookkeeping so the nightly jobs pick this user up.
	if err := h.users.Touch(c.Context(), userID); err != nil {
		log.Printf("⚠️ [SIGNALS] Failed to touch user %s: %v", userID, err)
	}

	accepted, rejected, err := h.signals.IngestBatch(c.Context(), userID, req.Events)
	if err != nil {
		if errors.Is(err, services.ErrEmptyBatch) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "events array is required",
			})
		}
		log.Printf("❌ [SIGNALS] Ingest failed for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store signals",
		})
	}

	return c.JSON(models.IngestResponse{
		Accepted: accepted,
		Rejected: rejected,
	})
}
