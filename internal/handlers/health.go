package handlers

import (
	"context"
	"time"

	"auralog/internal/database"
	"auralog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	mongoDB      *database.MongoDB
	redisService *services.RedisService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mongoDB *database.MongoDB, redisService *services.RedisService) *HealthHandler {
	return &HealthHandler{
		mongoDB:      mongoDB,
		redisService: redisService,
	}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	mongoStatus := "disconnected"
	if h.mongoDB != nil {
		if err := h.mongoDB.Ping(ctx); err == nil {
			mongoStatus = "connected"
		}
	}

	redisStatus := "disabled"
	if h.redisService != nil {
		if err := h.redisService.Client().Ping(ctx).Err(); err == nil {
			redisStatus = "connected"
		} else {
			redisStatus = "disconnected"
		}
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"mongodb":   mongoStatus,
		"redis":     redisStatus,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
