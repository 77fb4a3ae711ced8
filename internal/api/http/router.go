package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chamados/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Chamados  *handlers.ChamadosHandler
	Dashboard *handlers.DashboardHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	chamados := app.Group("/chamados")
	chamados.Get("/", cfg.Chamados.Search)
	chamados.Post("/", cfg.Chamados.Create)
	chamados.Get("/:id", cfg.Chamados.Get)

	app.Get("/dashboard", cfg.Dashboard.Get)
}
