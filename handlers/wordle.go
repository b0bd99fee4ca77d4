package handlers

import (
	"mma-stats-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWordleRoutes(app *fiber.App, wordleService *services.WordleService) {
	app.Get("/api/wordle/daily", wordleService.HandleDaily)
	app.Post("/api/wordle/guess", wordleService.HandleGuess)
	app.Get("/api/wordle/reveal", wordleService.HandleReveal)
}
