package models

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

var ErrInvalidRequest = errors.New("invalid request")

// MovesRequest asks for the legal moves of a position.
type MovesRequest struct {
	Board string `json:"board"`
	Color string `json:"color,omitempty"`
}

// MovesResponse lists legal moves in scan order.
type MovesResponse struct {
	Moves    []string `json:"moves"`
	GameOver bool     `json:"game_over"`
}

// ApplyRequest asks to play Move for Color on Board.
type ApplyRequest struct {
	Board string `json:"board"`
	Color string `json:"color,omitempty"`
	Move  string `json:"move"`
}

// ApplyResponse holds the board after a move.
type ApplyResponse struct {
	Board    string   `json:"board"`
	Flipped  []string `json:"flipped"`
	Turn     string   `json:"turn"`
	GameOver bool     `json:"game_over"`
}

// ChooseRequest asks the engine for a move. Zero values select the server defaults.
type ChooseRequest struct {
	Board     string `json:"board"`
	Color     string `json:"color,omitempty"`
	Depth     int    `json:"depth,omitempty"`
	Policy    string `json:"policy,omitempty"`
	Evaluator string `json:"evaluator,omitempty"`
}

// ChooseResponse holds the move chosen by the search.
type ChooseResponse struct {
	ID         string  `json:"id"`
	Move       string  `json:"move"`
	Score      float64 `json:"score"`
	Nodes      uint64  `json:"nodes"`
	DurationMs float64 `json:"duration_ms"`
	Policy     string  `json:"policy"`
	Evaluator  string  `json:"evaluator"`
	Depth      int     `json:"depth"`
}

// SearchStats holds the counters of one search policy.
type SearchStats struct {
	Policy   string `json:"policy"`
	Searches int64  `json:"searches"`
	Nodes    int64  `json:"nodes"`
}

// SearchReport is one analysis request as stored in Postgres.
type SearchReport struct {
	ID          uuid.UUID `json:"id"          db:"id"`
	Board       string    `json:"board"       db:"board"`
	Perspective string    `json:"perspective" db:"perspective"`
	Depth       int       `json:"depth"       db:"depth"`
	Policy      string    `json:"policy"      db:"policy"`
	Evaluator   string    `json:"evaluator"   db:"evaluator"`
	Move        string    `json:"move"        db:"move"`
	Score       float64   `json:"score"       db:"score"`
	Nodes       int64     `json:"nodes"       db:"nodes"`
	DurationMs  float64   `json:"duration_ms" db:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// NewSearchReport builds the report of a finished search.
func NewSearchReport(id uuid.UUID, board othello.Board, perspective othello.Color, evaluator string, result search.Result) SearchReport {
	return SearchReport{
		ID:          id,
		Board:       board.String(),
		Perspective: perspective.String(),
		Depth:       result.Depth,
		Policy:      string(result.Policy),
		Evaluator:   evaluator,
		Move:        result.Move.String(),
		Score:       result.Score,
		Nodes:       int64(result.Nodes), //nolint:gosec
		DurationMs:  durationMs(result.Duration),
		CreatedAt:   time.Now().UTC(),
	}
}

// NewChooseResponse converts a search result to its JSON form.
func NewChooseResponse(id uuid.UUID, evaluator string, result search.Result) ChooseResponse {
	return ChooseResponse{
		ID:         id.String(),
		Move:       result.Move.String(),
		Score:      result.Score,
		Nodes:      result.Nodes,
		DurationMs: durationMs(result.Duration),
		Policy:     string(result.Policy),
		Evaluator:  evaluator,
		Depth:      result.Depth,
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / float64(time.Millisecond)
}

// MoveStrings formats moves in field notation.
func MoveStrings(moves []othello.Move) []string {
	strings := make([]string, len(moves))
	for i, move := range moves {
		strings[i] = move.String()
	}
	return strings
}

// parsePosition parses a board and the color to analyse, which defaults to the side to move.
func parsePosition(boardString, colorString string) (othello.Board, othello.Color, error) {
	if boardString == "" {
		return othello.Board{}, othello.EMPTY, fmt.Errorf("%w: board is empty or missing", ErrInvalidRequest)
	}

	board, err := othello.ParseBoard(boardString)
	if err != nil {
		return othello.Board{}, othello.EMPTY, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if colorString == "" {
		return board, board.Turn(), nil
	}

	color, err := othello.ParseColor(colorString)
	if err != nil {
		return othello.Board{}, othello.EMPTY, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return board, color, nil
}

// Parse returns the board and the color whose moves are requested.
func (r MovesRequest) Parse() (othello.Board, othello.Color, error) {
	return parsePosition(r.Board, r.Color)
}

// Validate validates the moves request.
func (r MovesRequest) Validate() error {
	_, _, err := r.Parse()
	return err
}

// Parse returns the board, the color to play and the move.
func (r ApplyRequest) Parse() (othello.Board, othello.Color, othello.Move, error) {
	board, color, err := parsePosition(r.Board, r.Color)
	if err != nil {
		return othello.Board{}, othello.EMPTY, othello.Move{}, err
	}

	move, err := othello.ParseMove(r.Move)
	if err != nil {
		return othello.Board{}, othello.EMPTY, othello.Move{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if move == othello.PassMove {
		return othello.Board{}, othello.EMPTY, othello.Move{}, fmt.Errorf("%w: cannot apply a pass", ErrInvalidRequest)
	}

	return board, color, move, nil
}

// Validate validates the apply request.
func (r ApplyRequest) Validate() error {
	_, _, _, err := r.Parse()
	return err
}

// Parse returns the board and the perspective of the search.
func (r ChooseRequest) Parse() (othello.Board, othello.Color, error) {
	return parsePosition(r.Board, r.Color)
}

// Validate validates the choose request against the maximum allowed depth.
func (r ChooseRequest) Validate(maxDepth int) error {
	if _, _, err := r.Parse(); err != nil {
		return err
	}

	if r.Depth < 0 || r.Depth > maxDepth {
		return fmt.Errorf("%w: depth must be between 1 and %d, or 0 for the default", ErrInvalidRequest, maxDepth)
	}

	if r.Policy != "" {
		if _, err := search.ParsePolicy(r.Policy); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}

	if r.Evaluator != "" && !slices.Contains(evaluate.Names, r.Evaluator) {
		return fmt.Errorf("%w: %w: %s", ErrInvalidRequest, evaluate.ErrUnknownEvaluator, r.Evaluator)
	}

	return nil
}

// WithDefaults fills zero fields with the given defaults.
func (r ChooseRequest) WithDefaults(depth int, policy, evaluator string) ChooseRequest {
	if r.Depth == 0 {
		r.Depth = depth
	}

	if r.Policy == "" {
		r.Policy = policy
	}

	if r.Evaluator == "" {
		r.Evaluator = evaluator
	}

	return r
}
