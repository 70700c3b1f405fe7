package middleware

import (
	"context"
	"strings"

	"learnhub/apperrors"
	"learnhub/services/auth"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// Authenticator resolves a bearer token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
}

// JWTMiddleware checks for a valid bearer token and stores the caller's
// identity in the request context.
func JWTMiddleware(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return FailResponse(c, fiber.StatusUnauthorized, string(apperrors.KindUnauthorized), "Missing or invalid Authorization header")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return FailResponse(c, fiber.StatusUnauthorized, string(apperrors.KindUnauthorized), "Invalid Authorization header format")
		}

		id, err := a.Authenticate(c.UserContext(), strings.TrimSpace(authHeader[len("Bearer "):]))
		if err != nil {
			return ErrorResponse(c, err)
		}

		c.Locals(identityKey, id)
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by JWTMiddleware.
func CurrentIdentity(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(identityKey).(auth.Identity)
	return id, ok
}
