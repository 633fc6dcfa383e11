package handlers

import (
	"log"

	"auralog/internal/models"
	"auralog/internal/services"

	"github.com/gofiber/fiber/v2"
)

var knownPlatforms = map[string]struct{}{
	"ios":     {},
	"android": {},
	"web":     {},
}

// DeviceHandler handles push device registration
type DeviceHandler struct {
	users *services.UserService
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(users *services.UserService) *DeviceHandler {
	return &DeviceHandler{users: users}
}

// Register registers a push token for the authenticated user
// POST /api/devices
func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req models.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "token is required",
		})
	}
	if _, ok := knownPlatforms[req.Platform]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "platform must be one of: ios, android, web",
		})
	}

	if err := h.users.RegisterDevice(c.Context(), userID, req.Token, req.Platform); err != nil {
		log.Printf("❌ [DEVICES] Failed to register device for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to register device",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"registered": true,
	})
}

// Unregister removes a push token for the authenticated user
// DELETE /api/devices/:token
func (h *DeviceHandler) Unregister(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	token := c.Params("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "token is required",
		})
	}

	if err := h.users.UnregisterDevice(c.Context(), userID, token); err != nil {
		log.Printf("❌ [DEVICES] Failed to unregister device for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to unregister device",
		})
	}

	return c.JSON(fiber.Map{
		"unregistered": true,
	})
}
