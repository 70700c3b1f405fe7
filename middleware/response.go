package middleware

import (
	"errors"

	"learnhub/apperrors"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// FailResponse writes the error envelope with a stable machine-readable code.
func FailResponse(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  false,
		"message": message,
		"code":    code,
		"data":    nil,
	})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict, apperrors.KindInvalidState, apperrors.KindInvalid:
		return fiber.StatusBadRequest
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorResponse writes a service error. Internal causes never reach the client.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return FailResponse(c, fe.Code, codeForStatus(fe.Code), fe.Message)
	}
	kind := apperrors.KindOf(err)
	return FailResponse(c, StatusFor(kind), string(kind), apperrors.MessageOf(err))
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return string(apperrors.KindNotFound)
	case fiber.StatusUnauthorized:
		return string(apperrors.KindUnauthorized)
	case fiber.StatusForbidden:
		return string(apperrors.KindForbidden)
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	case fiber.StatusServiceUnavailable:
		return string(apperrors.KindUnavailable)
	}
	if status < fiber.StatusInternalServerError {
		return string(apperrors.KindInvalid)
	}
	return string(apperrors.KindInternal)
}

// FiberErrorHandler is the app-wide error handler for errors returned by
// handlers and for fiber's own routing errors.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return ErrorResponse(c, err)
}
