package courseController

import (
	"learnhub/middleware"
	"learnhub/validators"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// ============ Sections ============

func (ctl *CourseController) AdminCreateSection(c *fiber.Ctx) error {
	reqData := courseValidator.Request[courseValidator.SectionRequest](c)

	section, err := ctl.Catalog.AddSection(c.UserContext(), validators.LocalID(c, "id"), reqData.Title)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section created successfully!", section)
}

func (ctl *CourseController) AdminUpdateSection(c *fiber.Ctx) error {
	reqData := courseValidator.Request[courseValidator.SectionRequest](c)

	section, err := ctl.Catalog.UpdateSection(c.UserContext(), validators.LocalID(c, "id"), validators.LocalID(c, "sectionId"), &reqData.Title)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

func (ctl *CourseController) AdminDeleteSection(c *fiber.Ctx) error {
	if err := ctl.Catalog.DeleteSection(c.UserContext(), validators.LocalID(c, "id"), validators.LocalID(c, "sectionId")); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}

// ============ Lessons ============

func (ctl *CourseController) AdminCreateLesson(c *fiber.Ctx) error {
	reqData := courseValidator.Request[courseValidator.LessonRequest](c)

	var sectionID *uint
	if id := validators.LocalID(c, "sectionId"); id != 0 {
		sectionID = &id
	}
	lesson, err := ctl.Catalog.AddLesson(c.UserContext(), validators.LocalID(c, "id"), sectionID, reqData.Input())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func (ctl *CourseController) AdminUpdateLesson(c *fiber.Ctx) error {
	reqData := courseValidator.Request[courseValidator.UpdateLessonRequest](c)

	lesson, err := ctl.Catalog.UpdateLesson(c.UserContext(), validators.LocalID(c, "id"), validators.LocalID(c, "lessonId"), reqData.Update())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

func (ctl *CourseController) AdminDeleteLesson(c *fiber.Ctx) error {
	if err := ctl.Catalog.DeleteLesson(c.UserContext(), validators.LocalID(c, "id"), validators.LocalID(c, "lessonId")); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
