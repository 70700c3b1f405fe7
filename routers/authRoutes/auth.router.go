package authRoutes

import (
	authController "learnhub/controllers/auth"
	authValidator "learnhub/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the account routes. limit guards the
// credential endpoints against brute forcing.
func SetupAuthRoutes(api fiber.Router, ctl *authController.AuthController, jwt, limit fiber.Handler) {
	authGroup := api.Group("/auth")

	authGroup.Post("/register", limit, authValidator.Register(), ctl.Register)
	authGroup.Post("/login", limit, authValidator.Login(), ctl.Login)
	authGroup.Post("/forgot-password", limit, authValidator.ForgotPassword(), ctl.ForgotPassword)
	authGroup.Post("/reset-password", limit, authValidator.ResetPassword(), ctl.ResetPassword)
	authGroup.Get("/me", jwt, ctl.Me)
}
