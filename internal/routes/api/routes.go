package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.TokenAuth())

	// Position routes
	apiGroup.Post("/moves", LegalMoves)
	apiGroup.Post("/apply", ApplyMove)
	apiGroup.Post("/choose", ChooseMove)

	// Search history routes
	apiGroup.Get("/stats", GetSearchStats)
	apiGroup.Get("/reports", GetSearchReports)
}
