package healthController

import (
	"context"
	"time"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// Health reports liveness and database reachability. It always answers 200
// so load balancers can tell a degraded instance from a dead one.
func Health(ping middleware.Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status, db := "ok", "connected"
		if err := ping(ctx); err != nil {
			status, db = "degraded", "disconnected"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    status,
			"database":  db,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
