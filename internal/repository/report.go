package repository

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/services"
)

const (
	DefaultReportLimit = 50
	MaxReportLimit     = 500
)

const createReportsTable = `
	CREATE TABLE IF NOT EXISTS search_reports (
		id          UUID PRIMARY KEY,
		board       TEXT NOT NULL,
		perspective TEXT NOT NULL,
		depth       INTEGER NOT NULL,
		policy      TEXT NOT NULL,
		evaluator   TEXT NOT NULL,
		move        TEXT NOT NULL,
		score       DOUBLE PRECISION NOT NULL,
		nodes       BIGINT NOT NULL,
		duration_ms DOUBLE PRECISION NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS search_reports_created_at ON search_reports (created_at DESC);
`

// ReportRepository stores finished searches in Postgres.
type ReportRepository struct {
	services *services.Services
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(c *fiber.Ctx) *ReportRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	return &ReportRepository{
		services: services,
	}
}

func NewReportRepositoryFromServices(services *services.Services) *ReportRepository {
	return &ReportRepository{
		services: services,
	}
}

// Enabled returns whether Postgres is configured.
func (repo *ReportRepository) Enabled() bool {
	return repo.services != nil && repo.services.Postgres != nil
}

// EnsureSchema creates the reports table if it does not exist.
func (repo *ReportRepository) EnsureSchema(ctx context.Context) error {
	if !repo.Enabled() {
		return fmt.Errorf("search reports: %w", ErrServiceUnavailable)
	}

	if _, err := repo.services.Postgres.ExecContext(ctx, createReportsTable); err != nil {
		return fmt.Errorf("error creating search_reports table: %w", err)
	}

	return nil
}

// Insert stores a report.
func (repo *ReportRepository) Insert(ctx context.Context, report models.SearchReport) error {
	if !repo.Enabled() {
		return fmt.Errorf("search reports: %w", ErrServiceUnavailable)
	}

	query := `
		INSERT INTO search_reports
			(id, board, perspective, depth, policy, evaluator, move, score, nodes, duration_ms, created_at)
		VALUES
			(:id, :board, :perspective, :depth, :policy, :evaluator, :move, :score, :nodes, :duration_ms, :created_at)
	`

	if _, err := repo.services.Postgres.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("error inserting search report: %w", err)
	}

	return nil
}

// Recent returns the most recent reports, newest first.
func (repo *ReportRepository) Recent(ctx context.Context, limit int) ([]models.SearchReport, error) {
	if !repo.Enabled() {
		return nil, fmt.Errorf("search reports: %w", ErrServiceUnavailable)
	}

	query := `
		SELECT id, board, perspective, depth, policy, evaluator, move, score, nodes, duration_ms, created_at
		FROM search_reports
		ORDER BY created_at DESC
		LIMIT $1
	`

	reports := make([]models.SearchReport, 0)
	if err := repo.services.Postgres.SelectContext(ctx, &reports, query, ClampReportLimit(limit)); err != nil {
		return nil, fmt.Errorf("error loading search reports: %w", err)
	}

	return reports, nil
}

// ClampReportLimit maps a requested limit to the allowed range.
func ClampReportLimit(limit int) int {
	if limit <= 0 {
		return DefaultReportLimit
	}
	return min(limit, MaxReportLimit)
}
