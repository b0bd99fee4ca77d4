package handlers

import (
	"mma-stats-system/middleware"
	"mma-stats-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupStatsRoutes wires the direct entity endpoints plus the token-guarded
// maintenance surface.
func SetupStatsRoutes(
	app *fiber.App,
	fighterService *services.FighterService,
	eventService *services.EventService,
	rankingService *services.RankingService,
	analyticsService *services.AnalyticsService,
	importService *services.ImportService,
	serviceToken string,
) {
	// Public read surface
	app.Get("/api/fighters/:id", fighterService.GetByID)
	app.Get("/api/fighters/slug/:slug", fighterService.GetBySlug)
	app.Get("/api/events/next", eventService.GetNext)
	app.Get("/api/events/last", eventService.GetLast)
	app.Get("/api/events/:id", eventService.GetByID)
	app.Get("/api/rankings/:division", rankingService.GetDivision)
	app.Get("/api/analytics/betting", analyticsService.GetSnapshots)

	// Maintenance surface for the out-of-band importers
	admin := app.Group("/admin", middleware.MaintenanceAuth(serviceToken))
	admin.Post("/fighters", fighterService.Upsert)
	admin.Post("/fighters/:id/image", fighterService.UploadImage)
	admin.Post("/import", importService.HandleImport)
}
