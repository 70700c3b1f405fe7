package enrollmentController

import (
	"learnhub/middleware"
	"learnhub/services/enrollment"
	enrollmentValidator "learnhub/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

type EnrollmentController struct {
	Enrollments *enrollment.Service
}

func NewEnrollmentController(svc *enrollment.Service) *EnrollmentController {
	return &EnrollmentController{Enrollments: svc}
}

func customer(c *fiber.Ctx) enrollment.Customer {
	cust := enrollment.Customer{StudentID: middleware.StudentID(c)}
	if id, ok := middleware.CurrentIdentity(c); ok {
		cust.Name, cust.Email = id.Name, id.Email
	}
	return cust
}

// InitiateEnrollment opens a gateway order for the course price.
func (ctl *EnrollmentController) InitiateEnrollment(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedInitiate").(*enrollmentValidator.InitiateRequest)

	checkout, err := ctl.Enrollments.Initiate(c.UserContext(), customer(c), reqData.CourseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment order created successfully!", checkout)
}

// VerifyEnrollment confirms the payment and enrolls the student.
func (ctl *EnrollmentController) VerifyEnrollment(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedVerify").(*enrollmentValidator.VerifyRequest)

	e, created, err := ctl.Enrollments.Confirm(c.UserContext(), customer(c), reqData.CourseID, reqData.Proof())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if !created {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled!", e)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", e)
}

func (ctl *EnrollmentController) GetUserEnrollments(c *fiber.Ctx) error {
	list, err := ctl.Enrollments.ListForStudent(c.UserContext(), middleware.StudentID(c))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", list)
}

func (ctl *EnrollmentController) AdminGetAllEnrollments(c *fiber.Ctx) error {
	list, err := ctl.Enrollments.ListAll(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", list)
}
