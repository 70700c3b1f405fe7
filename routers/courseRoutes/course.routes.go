package courseRoutes

import (
	courseController "learnhub/controllers/course"
	"learnhub/middleware"
	"learnhub/validators"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the public catalog and the admin editor.
func SetupCourseRoutes(api fiber.Router, ctl *courseController.CourseController, jwt fiber.Handler) {
	courseGroup := api.Group("/courses")

	// Public catalog
	courseGroup.Get("/", ctl.GetAllCourses)
	courseGroup.Get("/:id", ctl.GetCourseDetails)

	admin := func(handlers ...fiber.Handler) []fiber.Handler {
		return append([]fiber.Handler{jwt, middleware.RequireAdmin}, handlers...)
	}
	courseID := validators.IDParams("id")

	// Course CRUD
	courseGroup.Post("/", admin(courseValidator.CreateCourse(), ctl.AdminCreateCourse)...)
	courseGroup.Get("/:id/admin", admin(ctl.AdminGetCourseDetails)...)
	courseGroup.Put("/:id", admin(courseID, courseValidator.UpdateCourse(), ctl.AdminUpdateCourse)...)
	courseGroup.Delete("/:id", admin(courseID, ctl.AdminDeleteCourse)...)
	courseGroup.Patch("/:id/publish", admin(courseID, ctl.AdminPublishCourse)...)

	// Sections
	sectionIDs := validators.IDParams("id", "sectionId")
	courseGroup.Post("/:id/sections", admin(courseID, courseValidator.Section(), ctl.AdminCreateSection)...)
	courseGroup.Put("/:id/sections/:sectionId", admin(sectionIDs, courseValidator.Section(), ctl.AdminUpdateSection)...)
	courseGroup.Delete("/:id/sections/:sectionId", admin(sectionIDs, ctl.AdminDeleteSection)...)
	courseGroup.Post("/:id/sections/:sectionId/lessons", admin(sectionIDs, courseValidator.Lesson(), ctl.AdminCreateLesson)...)

	// Lessons
	lessonIDs := validators.IDParams("id", "lessonId")
	courseGroup.Post("/:id/lessons", admin(courseID, courseValidator.Lesson(), ctl.AdminCreateLesson)...)
	courseGroup.Put("/:id/lessons/:lessonId", admin(lessonIDs, courseValidator.UpdateLesson(), ctl.AdminUpdateLesson)...)
	courseGroup.Delete("/:id/lessons/:lessonId", admin(lessonIDs, ctl.AdminDeleteLesson)...)

	// Quiz
	courseGroup.Post("/:id/quiz", admin(courseID, courseValidator.Quiz(), ctl.AdminReplaceQuiz)...)
}
