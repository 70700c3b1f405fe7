package enrollmentRoutes

import (
	enrollmentController "learnhub/controllers/enrollment"
	"learnhub/middleware"
	enrollmentValidator "learnhub/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(api fiber.Router, ctl *enrollmentController.EnrollmentController, jwt fiber.Handler) {
	enrollGroup := api.Group("/enrollments", jwt)

	enrollGroup.Post("/", middleware.RequireStudent, enrollmentValidator.Initiate(), ctl.InitiateEnrollment)
	enrollGroup.Post("/verify", middleware.RequireStudent, enrollmentValidator.Verify(), ctl.VerifyEnrollment)
	enrollGroup.Get("/", middleware.RequireStudent, ctl.GetUserEnrollments)
	enrollGroup.Get("/all", middleware.RequireAdmin, ctl.AdminGetAllEnrollments)
}
