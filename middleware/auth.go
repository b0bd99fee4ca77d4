package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// MaintenanceAuth guards the /admin write surface used by the out-of-band
// maintenance tooling. The token arrives as "Authorization: Bearer <token>"
// or "X-Service-Token". An empty configured token disables the surface
// entirely rather than leaving it open.
func MaintenanceAuth(expectedToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if expectedToken == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "maintenance surface is disabled",
			})
		}

		token := c.Get("X-Service-Token")
		if token == "" {
			token = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
			log.Warn().Str("path", c.Path()).Msg("rejected maintenance request")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid service token",
			})
		}

		return c.Next()
	}
}
