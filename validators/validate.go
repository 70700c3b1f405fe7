// Package validators holds the shared pieces of the per-endpoint request
// validators.
package validators

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"learnhub/apperrors"
	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Check runs the struct's validate tags and returns field errors keyed by
// JSON name. It returns nil when the struct is valid.
func Check(req any) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": "Invalid request!"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldKey(fe)] = message(fe)
	}
	return out
}

func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", field)
	case "email":
		return "Invalid email!"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s items!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long!", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long!", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s!", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s!", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL!", field)
	default:
		return fmt.Sprintf("%s is invalid!", field)
	}
}

// ParamID reads a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// Body parses the JSON body into req and validates it. On failure the
// response is already written and the returned error must be passed back
// to fiber.
func Body(c *fiber.Ctx, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, middleware.FailResponse(c, fiber.StatusBadRequest, string(apperrors.KindInvalid), "Invalid request body!")
	}
	if errs := Check(req); errs != nil {
		return false, middleware.ValidationErrorResponse(c, errs)
	}
	return true, nil
}

var paramNotFound = map[string]string{
	"id":        "Course not found",
	"courseId":  "Course not found",
	"sectionId": "Section not found",
	"lessonId":  "Lesson not found",
}

// IDParams parses the named path parameters and stores each under its own
// name in Locals. A malformed id can never match a record, so the first one
// answers 404 like a missing record would.
func IDParams(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range names {
			id, ok := ParamID(c, name)
			if !ok {
				msg, known := paramNotFound[name]
				if !known {
					msg = "Not found"
				}
				return middleware.FailResponse(c, fiber.StatusNotFound, string(apperrors.KindNotFound), msg)
			}
			c.Locals(name, id)
		}
		return c.Next()
	}
}

// LocalID returns a parameter stored by IDParams.
func LocalID(c *fiber.Ctx, name string) uint {
	id, _ := c.Locals(name).(uint)
	return id
}

// Fail answers 422 with the given field errors.
func Fail(c *fiber.Ctx, errs map[string]string) error {
	return middleware.ValidationErrorResponse(c, errs)
}
