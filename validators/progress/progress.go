package progressValidator

import (
	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

type SubmitQuizRequest struct {
	Answers []any `json:"answers" validate:"required"`
}

// SubmitQuiz keeps answers untyped: any entry that is not an integral
// number simply scores nothing.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitQuizRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
