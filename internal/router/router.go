package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/greenwatch/greenwatch-api/internal/config"
	"github.com/greenwatch/greenwatch-api/internal/handler"
	"github.com/greenwatch/greenwatch-api/internal/middleware"
	"github.com/greenwatch/greenwatch-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	ReportHandler      *handler.ReportHandler
	AdminReportHandler *handler.AdminReportHandler
	AdminUserHandler   *handler.AdminUserHandler
	StatsHandler       *handler.StatsHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// A missing guard would leave /api/admin protected only by a role check
	// over an absent claim. Refuse to wire routes without one.
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		panic("router: JWTMiddleware is required")
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth, jwtMiddleware)
	}

	if deps.ReportHandler != nil {
		reports := api.Group("/reports")
		deps.ReportHandler.Register(reports, jwtMiddleware)
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole("admin"))
	if deps.AdminReportHandler != nil {
		deps.AdminReportHandler.Register(admin)
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}

	if deps.StatsHandler != nil {
		stats := api.Group("/stats")
		deps.StatsHandler.Register(stats)
	}
}
