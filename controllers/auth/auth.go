package authController

import (
	"learnhub/middleware"
	"learnhub/services/auth"
	authValidator "learnhub/validators/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Auth *auth.Service
}

func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{Auth: svc}
}

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	reqData := authValidator.Request[authValidator.RegisterRequest](c)

	session, err := ctl.Auth.Register(c.UserContext(), reqData.Name, reqData.Email, reqData.Password)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registered successfully!", session)
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	reqData := authValidator.Request[authValidator.LoginRequest](c)

	session, err := ctl.Auth.Login(c.UserContext(), reqData.Email, reqData.Password)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", session)
}

func (ctl *AuthController) ForgotPassword(c *fiber.Ctx) error {
	reqData := authValidator.Request[authValidator.ForgotPasswordRequest](c)

	result, err := ctl.Auth.ForgotPassword(c.UserContext(), reqData.Email)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, result.Message, result)
}

func (ctl *AuthController) ResetPassword(c *fiber.Ctx) error {
	reqData := authValidator.Request[authValidator.ResetPasswordRequest](c)

	if err := ctl.Auth.ResetPassword(c.UserContext(), reqData.Email, reqData.Token, reqData.NewPassword); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", nil)
}

// Me returns the caller's identity.
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", id.View())
}
