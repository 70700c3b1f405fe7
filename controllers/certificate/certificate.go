package certificateController

import (
	"learnhub/middleware"
	"learnhub/services/certificate"
	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

type CertificateController struct {
	Certificates *certificate.Service
}

func NewCertificateController(svc *certificate.Service) *CertificateController {
	return &CertificateController{Certificates: svc}
}

// IssueCertificate returns 201 for a new certificate and 200 when the
// student already holds one for the course.
func (ctl *CertificateController) IssueCertificate(c *fiber.Ctx) error {
	cert, created, err := ctl.Certificates.Issue(c.UserContext(), middleware.StudentID(c), validators.LocalID(c, "courseId"))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if !created {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", cert)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", cert)
}

func (ctl *CertificateController) GetUserCertificates(c *fiber.Ctx) error {
	certs, err := ctl.Certificates.ListForStudent(c.UserContext(), middleware.StudentID(c))
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certs)
}
