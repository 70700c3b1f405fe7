package middleware

import (
	"learnhub/apperrors"

	"github.com/gofiber/fiber/v2"
)

const studentIDKey = "studentId"

// RequireAdmin lets only admins through. It must run after JWTMiddleware.
func RequireAdmin(c *fiber.Ctx) error {
	id, ok := CurrentIdentity(c)
	if !ok {
		return FailResponse(c, fiber.StatusUnauthorized, string(apperrors.KindUnauthorized), "Unauthorized")
	}
	if !id.IsAdmin() {
		return FailResponse(c, fiber.StatusForbidden, string(apperrors.KindForbidden), "Admin access required")
	}
	return c.Next()
}

// RequireStudent lets through callers backed by a stored account and
// exposes their id via StudentID. The configured admin has no account and is
// refused.
func RequireStudent(c *fiber.Ctx) error {
	id, ok := CurrentIdentity(c)
	if !ok {
		return FailResponse(c, fiber.StatusUnauthorized, string(apperrors.KindUnauthorized), "Unauthorized")
	}
	studentID, ok := id.StudentID()
	if !ok {
		return FailResponse(c, fiber.StatusForbidden, string(apperrors.KindForbidden), "This action requires a user account")
	}
	c.Locals(studentIDKey, studentID)
	return c.Next()
}

func StudentID(c *fiber.Ctx) uint {
	id, _ := c.Locals(studentIDKey).(uint)
	return id
}
