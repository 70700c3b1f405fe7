package certificateRoutes

import (
	certificateController "learnhub/controllers/certificate"
	"learnhub/middleware"
	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

func SetupCertificateRoutes(api fiber.Router, ctl *certificateController.CertificateController, jwt fiber.Handler) {
	certGroup := api.Group("/certificates", jwt, middleware.RequireStudent)

	certGroup.Get("/", ctl.GetUserCertificates)
	certGroup.Post("/:courseId", validators.IDParams("courseId"), ctl.IssueCertificate)
}
