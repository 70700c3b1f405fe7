package courseController

import (
	"learnhub/middleware"
	"learnhub/validators"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

func (ctl *CourseController) AdminGetCourseDetails(c *fiber.Ctx) error {
	course, err := ctl.Catalog.GetForAdmin(c.UserContext(), c.Params("id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func (ctl *CourseController) AdminCreateCourse(c *fiber.Ctx) error {
	reqData := courseValidator.Request[courseValidator.CreateCourseRequest](c)

	var createdBy *uint
	if id, ok := middleware.CurrentIdentity(c); ok {
		if uid, stored := id.StudentID(); stored {
			createdBy = &uid
		}
	}
	course, err := ctl.Catalog.Create(c.UserContext(), reqData.Input(), createdBy)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func (ctl *CourseController) AdminUpdateCourse(c *fiber.Ctx) error {
	reqData := courseValidator.Request[courseValidator.UpdateCourseRequest](c)

	course, err := ctl.Catalog.Update(c.UserContext(), validators.LocalID(c, "id"), reqData.Update())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func (ctl *CourseController) AdminDeleteCourse(c *fiber.Ctx) error {
	if err := ctl.Catalog.Delete(c.UserContext(), validators.LocalID(c, "id")); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

func (ctl *CourseController) AdminPublishCourse(c *fiber.Ctx) error {
	course, err := ctl.Catalog.Publish(c.UserContext(), validators.LocalID(c, "id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

func (ctl *CourseController) AdminReplaceQuiz(c *fiber.Ctx) error {
	reqData := courseValidator.Request[courseValidator.QuizRequest](c)

	quiz, err := ctl.Catalog.ReplaceQuiz(c.UserContext(), validators.LocalID(c, "id"), reqData.Input())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz saved successfully!", quiz)
}
