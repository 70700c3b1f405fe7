// Package routers assembles the fiber application and mounts every route
// group under /api.
package routers

import (
	"strings"
	"time"

	adminController "learnhub/controllers/admin"
	authController "learnhub/controllers/auth"
	certificateController "learnhub/controllers/certificate"
	courseController "learnhub/controllers/course"
	enrollmentController "learnhub/controllers/enrollment"
	healthController "learnhub/controllers/health"
	progressController "learnhub/controllers/progress"
	"learnhub/middleware"
	"learnhub/routers/adminRoutes"
	"learnhub/routers/authRoutes"
	"learnhub/routers/certificateRoutes"
	"learnhub/routers/courseRoutes"
	"learnhub/routers/enrollmentRoutes"
	"learnhub/routers/progressRoutes"
	"learnhub/services/auth"
	"learnhub/services/catalog"
	"learnhub/services/certificate"
	"learnhub/services/dashboard"
	"learnhub/services/enrollment"
	"learnhub/services/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type Services struct {
	Auth         *auth.Service
	Catalog      *catalog.Service
	Enrollments  *enrollment.Service
	Progress     *progress.Service
	Certificates *certificate.Service
	Dashboard    *dashboard.Service
	Ping         middleware.Pinger
}

type Options struct {
	ClientURL   string
	AccessLog   bool
	GlobalLimit int // requests per LimitWindow per IP
	AuthLimit   int // requests per LimitWindow per IP on credential endpoints
	LimitWindow time.Duration
}

func DefaultOptions(clientURL string) Options {
	return Options{
		ClientURL:   clientURL,
		AccessLog:   true,
		GlobalLimit: 100,
		AuthLimit:   20,
		LimitWindow: 15 * time.Minute,
	}
}

func NewApp(svcs Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "LearnHub",
		ErrorHandler: middleware.FiberErrorHandler,
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins(opts.ClientURL),
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}

	api := app.Group("/api")
	api.Get("/health", healthController.Health(svcs.Ping))

	api.Use(rateLimit(opts.GlobalLimit, opts.LimitWindow))
	api.Use(middleware.DatabaseGate(svcs.Ping, 2*time.Second))

	jwt := middleware.JWTMiddleware(svcs.Auth)

	authRoutes.SetupAuthRoutes(api, authController.NewAuthController(svcs.Auth), jwt, rateLimit(opts.AuthLimit, opts.LimitWindow))
	courseRoutes.SetupCourseRoutes(api, courseController.NewCourseController(svcs.Catalog), jwt)
	enrollmentRoutes.SetupEnrollmentRoutes(api, enrollmentController.NewEnrollmentController(svcs.Enrollments), jwt)
	progressRoutes.SetupProgressRoutes(api, progressController.NewProgressController(svcs.Progress), jwt)
	certificateRoutes.SetupCertificateRoutes(api, certificateController.NewCertificateController(svcs.Certificates), jwt)
	adminRoutes.SetupAdminRoutes(api, adminController.NewDashboardController(svcs.Dashboard), jwt)

	return app
}

func rateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return middleware.FailResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, please try again later")
		},
	})
}

func allowedOrigins(clientURL string) string {
	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if u := strings.TrimRight(strings.TrimSpace(clientURL), "/"); u != "" {
		origins = append([]string{u}, origins...)
	}
	return strings.Join(origins, ",")
}
