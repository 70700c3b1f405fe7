package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports database reachability.
type Pinger func(ctx context.Context) error

// DatabaseGate answers 503 before any handler runs while the database is
// unreachable.
func DatabaseGate(ping Pinger, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		if err := ping(ctx); err != nil {
			return FailResponse(c, fiber.StatusServiceUnavailable, "DB_DISCONNECTED", "Database temporarily unavailable")
		}
		return c.Next()
	}
}
