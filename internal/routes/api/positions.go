package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/analysis"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/services"
)

// NewAnalyzer creates an Analyzer from the engine, config and services stored in the context.
func NewAnalyzer(c *fiber.Ctx) *analysis.Analyzer {
	engine := c.Locals("engine").(*othello.Engine)        //nolint: errcheck
	cfg := c.Locals("config").(*config.ServerConfig)      //nolint: errcheck
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	return analysis.NewAnalyzer(engine, cfg.Search, services)
}

// LegalMoves handles legal move requests.
func LegalMoves(c *fiber.Ctx) error {
	var payload models.MovesRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := NewAnalyzer(c).Moves(payload)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// ApplyMove handles requests to play a move.
func ApplyMove(c *fiber.Ctx) error {
	var payload models.ApplyRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := NewAnalyzer(c).Apply(payload)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// ChooseMove handles requests for an engine move.
func ChooseMove(c *fiber.Ctx) error {
	var payload models.ChooseRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := NewAnalyzer(c).Choose(c.Context(), payload)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
