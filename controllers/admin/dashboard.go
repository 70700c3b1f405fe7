package adminController

import (
	"learnhub/middleware"
	"learnhub/services/dashboard"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Dashboard *dashboard.Service
}

func NewDashboardController(svc *dashboard.Service) *DashboardController {
	return &DashboardController{Dashboard: svc}
}

func (ctl *DashboardController) AdminDashboardStats(c *fiber.Ctx) error {
	summary, err := ctl.Dashboard.Summary(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", summary)
}
