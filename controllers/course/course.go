package courseController

import (
	"learnhub/middleware"
	"learnhub/services/catalog"

	"github.com/gofiber/fiber/v2"
)

type CourseController struct {
	Catalog *catalog.Service
}

func NewCourseController(svc *catalog.Service) *CourseController {
	return &CourseController{Catalog: svc}
}

// GetAllCourses lists the published catalog.
func (ctl *CourseController) GetAllCourses(c *fiber.Ctx) error {
	courses, err := ctl.Catalog.ListPublished(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseDetails accepts a numeric id or a legacy id.
func (ctl *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	course, err := ctl.Catalog.GetPublished(c.UserContext(), c.Params("id"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}
