package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Anthonytesla02/YoutubeNichePro/internal/handler"
	"github.com/Anthonytesla02/YoutubeNichePro/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Analyze *handler.AnalyzeHandler
	Search  *handler.SearchHandler
	Related *handler.RelatedHandler
	Export  *handler.ExportHandler
	Runs    *handler.RunsHandler
	Stats   *handler.StatsHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health and metrics (outside the API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	api.Get("/analyze", h.Analyze.Analyze)
	api.Post("/analyze", h.Analyze.Analyze)
	api.Get("/search", h.Search.Search)
	api.Get("/related/:videoId", h.Related.GetRelated)
	api.Get("/export", h.Export.Export)
	api.Get("/runs", h.Runs.List)
	api.Get("/stats", h.Stats.GetStats)
}
