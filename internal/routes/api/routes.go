package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/engine/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.TokenAuth())

	// Engine routes
	apiGroup.Post("/move", SuggestMove)
	apiGroup.Post("/play", PlayMove)
	apiGroup.Get("/presets", GetPresets)

	// Stored searches
	apiGroup.Get("/searches/:id", GetSearch)
}
