package progressController

import (
	"learnhub/middleware"
	"learnhub/services/progress"
	"learnhub/validators"
	progressValidator "learnhub/validators/progress"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Progress *progress.Service
}

func NewProgressController(svc *progress.Service) *ProgressController {
	return &ProgressController{Progress: svc}
}

func (ctl *ProgressController) GetUserProgress(c *fiber.Ctx) error {
	p, err := ctl.Progress.Get(c.UserContext(), middleware.StudentID(c), validators.LocalID(c, "courseId"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", p)
}

func (ctl *ProgressController) MarkLessonComplete(c *fiber.Ctx) error {
	p, err := ctl.Progress.CompleteLesson(c.UserContext(), middleware.StudentID(c),
		validators.LocalID(c, "courseId"), validators.LocalID(c, "lessonId"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", p)
}

func (ctl *ProgressController) GetLessonVideo(c *fiber.Ctx) error {
	u, err := ctl.Progress.VideoURL(c.UserContext(), middleware.StudentID(c),
		validators.LocalID(c, "courseId"), validators.LocalID(c, "lessonId"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video URL generated!", u)
}

func (ctl *ProgressController) SubmitQuiz(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedQuiz").(*progressValidator.SubmitQuizRequest)

	score, p, err := ctl.Progress.SubmitQuiz(c.UserContext(), middleware.StudentID(c), validators.LocalID(c, "courseId"), reqData.Answers)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"score":    score,
		"progress": p,
	})
}
