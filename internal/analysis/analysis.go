// Package analysis answers position queries for the HTTP and websocket handlers.
package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
)

// Analyzer computes legal moves, applies moves and runs searches.
// Finished searches are counted in Redis and stored in Postgres when those are configured.
type Analyzer struct {
	engine  *othello.Engine
	cfg     config.SearchConfig
	reports *repository.ReportRepository
	stats   *repository.StatsRepository
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(engine *othello.Engine, cfg config.SearchConfig, services *services.Services) *Analyzer {
	return &Analyzer{
		engine:  engine,
		cfg:     cfg,
		reports: repository.NewReportRepositoryFromServices(services),
		stats:   repository.NewStatsRepositoryFromServices(services),
	}
}

// Moves returns the legal moves of the requested color.
func (a *Analyzer) Moves(req models.MovesRequest) (models.MovesResponse, error) {
	board, color, err := req.Parse()
	if err != nil {
		return models.MovesResponse{}, err
	}

	if err = a.engine.CheckBoard(board); err != nil {
		return models.MovesResponse{}, err
	}

	return models.MovesResponse{
		Moves:    models.MoveStrings(a.engine.LegalMoves(board, color)),
		GameOver: a.engine.IsGameOver(board),
	}, nil
}

// Apply plays a move and returns the resulting board.
func (a *Analyzer) Apply(req models.ApplyRequest) (models.ApplyResponse, error) {
	board, color, move, err := req.Parse()
	if err != nil {
		return models.ApplyResponse{}, err
	}

	flipped := a.engine.Flips(board, move, color)

	next, err := a.engine.ApplyMove(board, move, color)
	if err != nil {
		return models.ApplyResponse{}, err
	}

	return models.ApplyResponse{
		Board:    next.String(),
		Flipped:  models.MoveStrings(flipped),
		Turn:     next.Turn().String(),
		GameOver: a.engine.IsGameOver(next),
	}, nil
}

// Choose runs a search and returns the chosen move.
func (a *Analyzer) Choose(ctx context.Context, req models.ChooseRequest) (models.ChooseResponse, error) {
	req = req.WithDefaults(a.cfg.DefaultDepth, a.cfg.Policy, a.cfg.Evaluator)

	if err := req.Validate(a.cfg.MaxDepth); err != nil {
		return models.ChooseResponse{}, err
	}

	board, perspective, err := req.Parse()
	if err != nil {
		return models.ChooseResponse{}, err
	}

	evaluator, err := evaluate.ByName(req.Evaluator, a.engine)
	if err != nil {
		return models.ChooseResponse{}, err
	}

	policy, err := search.ParsePolicy(req.Policy)
	if err != nil {
		return models.ChooseResponse{}, err
	}

	if limit := a.cfg.DepthLimit(policy); req.Depth > limit {
		return models.ChooseResponse{}, fmt.Errorf("%w: depth %d exceeds the limit %d of policy %s",
			models.ErrInvalidRequest, req.Depth, limit, policy)
	}

	searcher, err := search.NewSearcher(a.engine, evaluator, search.WithPolicy(policy))
	if err != nil {
		return models.ChooseResponse{}, fmt.Errorf("error creating searcher: %w", err)
	}

	result, err := searcher.Search(board, perspective, req.Depth)
	if err != nil {
		return models.ChooseResponse{}, err
	}

	id := uuid.New()
	a.record(ctx, models.NewSearchReport(id, board, perspective, req.Evaluator, result), result)

	return models.NewChooseResponse(id, req.Evaluator, result), nil
}

// record stores the search in the configured backends. Failures are logged, the search result is still returned.
func (a *Analyzer) record(ctx context.Context, report models.SearchReport, result search.Result) {
	if a.stats.Enabled() {
		if err := a.stats.Record(ctx, result); err != nil {
			slog.Warn("Failed to record search stats", "error", err)
		}
	}

	if a.reports.Enabled() {
		if err := a.reports.Insert(ctx, report); err != nil {
			slog.Warn("Failed to store search report", "id", report.ID, "error", err)
		}
	}
}
