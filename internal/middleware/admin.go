package middleware

import (
	"auralog/internal/config"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware gates the job admin endpoints. A caller is a
// superadmin when their JWT role is "admin" or their ID is on the
// configured superadmin list.
func AdminMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		isSuperadmin := false

		if role, ok := c.Locals("user_role").(string); ok && role == "admin" {
			isSuperadmin = true
		}

		if !isSuperadmin && cfg.IsSuperadmin(userID) {
			isSuperadmin = true
		}

		if !isSuperadmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Superadmin access required",
			})
		}

		c.Locals("is_superadmin", true)
		return c.Next()
	}
}
