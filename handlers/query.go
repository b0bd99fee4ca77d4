package handlers

import (
	"mma-stats-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupQueryRoutes(app *fiber.App, queryService *services.QueryService) {
	app.Post("/api/query", queryService.HandleQuery)
	app.Post("/api/query/", queryService.HandleQuery)
	app.Get("/api/query/examples", queryService.HandleExamples)
}
