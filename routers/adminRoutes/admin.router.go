package adminRoutes

import (
	adminController "learnhub/controllers/admin"
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(api fiber.Router, ctl *adminController.DashboardController, jwt fiber.Handler) {
	dashGroup := api.Group("/admin/dashboard", jwt, middleware.RequireAdmin)
	dashGroup.Get("/stats", ctl.AdminDashboardStats)
}
