package authValidator

import (
	"strings"

	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

const requestKey = "validatedAuth"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		reqData.Name = strings.TrimSpace(reqData.Name)
		c.Locals(requestKey, reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals(requestKey, reqData)
		return c.Next()
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ForgotPasswordRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals(requestKey, reqData)
		return c.Next()
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ResetPasswordRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals(requestKey, reqData)
		return c.Next()
	}
}

// Request returns the body stored by one of the validators above.
func Request[T any](c *fiber.Ctx) *T {
	req, _ := c.Locals(requestKey).(*T)
	return req
}
