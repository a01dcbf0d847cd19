package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

const apiKeyHeader = "X-API-Key"

// APIKey gates every request behind a static API key carried in the
// X-API-Key header. A missing key is unauthorized, an unknown key is
// forbidden. Comparison is constant-time per configured key.
func APIKey(keys []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get(apiKeyHeader)
		if provided == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "API key is required. Please provide X-API-Key header.")
		}

		for _, key := range keys {
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) == 1 {
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, "Invalid API key provided.")
	}
}
