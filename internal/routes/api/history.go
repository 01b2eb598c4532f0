package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/repository"
)

// GetSearchStats returns the search counters per policy.
func GetSearchStats(c *fiber.Ctx) error {
	repo := repository.NewStatsRepository(c)
	stats, err := repo.GetStats(c.Context())
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

// GetSearchReports returns the most recent search reports.
func GetSearchReports(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", repository.DefaultReportLimit)

	repo := repository.NewReportRepository(c)
	reports, err := repo.Recent(c.Context(), limit)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(reports)
}
