package progressRoutes

import (
	progressController "learnhub/controllers/progress"
	"learnhub/middleware"
	"learnhub/validators"
	progressValidator "learnhub/validators/progress"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoutes(api fiber.Router, ctl *progressController.ProgressController, jwt fiber.Handler) {
	progressGroup := api.Group("/progress", jwt, middleware.RequireStudent)

	courseID := validators.IDParams("courseId")
	lessonIDs := validators.IDParams("courseId", "lessonId")

	progressGroup.Get("/:courseId", courseID, ctl.GetUserProgress)
	progressGroup.Post("/:courseId/lessons/:lessonId/complete", lessonIDs, ctl.MarkLessonComplete)
	progressGroup.Get("/:courseId/lessons/:lessonId/video", lessonIDs, ctl.GetLessonVideo)
	progressGroup.Post("/:courseId/quiz/submit", courseID, progressValidator.SubmitQuiz(), ctl.SubmitQuiz)
}
