package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/search"
)

// ErrorStatus maps an error to the HTTP status code reported to clients.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidRequest),
		errors.Is(err, othello.ErrInvalidMove),
		errors.Is(err, othello.ErrBoardSize),
		errors.Is(err, othello.ErrInvalidSize),
		errors.Is(err, othello.ErrInvalidColor),
		errors.Is(err, search.ErrInvalidDepth),
		errors.Is(err, search.ErrUnknownPolicy),
		errors.Is(err, search.ErrNoLegalMoves),
		errors.Is(err, evaluate.ErrUnknownEvaluator):
		return fiber.StatusBadRequest
	case errors.Is(err, search.ErrGameOver):
		return fiber.StatusConflict
	case errors.Is(err, repository.ErrServiceUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(ErrorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
