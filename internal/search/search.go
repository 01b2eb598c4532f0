package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
)

var (
	ErrNoRules       = errors.New("searcher needs rules")
	ErrNoEvaluator   = errors.New("searcher needs an evaluator")
	ErrUnknownPolicy = errors.New("unknown search policy")
	ErrInvalidDepth  = errors.New("search depth must be at least 1")
	ErrGameOver      = errors.New("game is over")
	ErrNoLegalMoves  = errors.New("no legal moves, side must pass")
)

// Rules is everything the search needs from the move engine.
type Rules interface {
	LegalMoves(board othello.Board, color othello.Color) []othello.Move
	ApplyMove(board othello.Board, move othello.Move, color othello.Color) (othello.Board, error)
	HasLegalMove(board othello.Board, color othello.Color) bool
	IsGameOver(board othello.Board) bool
}

// boardChecker is implemented by rules that only accept boards of a certain size.
type boardChecker interface {
	CheckBoard(board othello.Board) error
}

// Chooser picks a move for color. Both Searcher and Random implement it.
type Chooser interface {
	ChooseMove(board othello.Board, color othello.Color, maxDepth int) (othello.Move, error)
}

// Policy selects how the opponent's replies are aggregated.
type Policy string

const (
	// AlphaBeta is minimax with alpha-beta pruning.
	AlphaBeta Policy = "alphabeta"

	// Minimax visits the full tree. It returns the same results as AlphaBeta.
	Minimax Policy = "minimax"

	// Expectimax averages over the opponent's replies instead of minimizing.
	Expectimax Policy = "expectimax"
)

// Policies lists all known policies.
var Policies = []Policy{AlphaBeta, Minimax, Expectimax}

// ParsePolicy converts a policy name to a Policy.
func ParsePolicy(s string) (Policy, error) {
	for _, policy := range Policies {
		if string(policy) == s {
			return policy, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Result describes a finished search.
type Result struct {
	Move     othello.Move
	Score    float64
	Nodes    uint64
	Duration time.Duration
	Policy   Policy
	Depth    int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithPolicy sets the search policy. The default is AlphaBeta.
func WithPolicy(policy Policy) Option {
	return func(s *Searcher) {
		s.policy = policy
	}
}

// Searcher chooses moves by searching the game tree to a fixed depth.
// It keeps no state between searches and can be used concurrently.
type Searcher struct {
	rules     Rules
	evaluator evaluate.Evaluator
	policy    Policy
}

// NewSearcher creates a Searcher.
func NewSearcher(rules Rules, evaluator evaluate.Evaluator, opts ...Option) (*Searcher, error) {
	if rules == nil {
		return nil, ErrNoRules
	}

	if evaluator == nil {
		return nil, ErrNoEvaluator
	}

	s := &Searcher{
		rules:     rules,
		evaluator: evaluator,
		policy:    AlphaBeta,
	}

	for _, opt := range opts {
		opt(s)
	}

	if _, err := ParsePolicy(string(s.policy)); err != nil {
		return nil, err
	}

	return s, nil
}

// NewSearcherMust is like NewSearcher but panics on error.
func NewSearcherMust(rules Rules, evaluator evaluate.Evaluator, opts ...Option) *Searcher {
	s, err := NewSearcher(rules, evaluator, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Policy returns the policy of the searcher.
func (s *Searcher) Policy() Policy {
	return s.policy
}

// ChooseMove returns the best move for perspective when searching maxDepth plies.
// Callers should check that the game is not over first.
func (s *Searcher) ChooseMove(board othello.Board, perspective othello.Color, maxDepth int) (othello.Move, error) {
	result, err := s.Search(board, perspective, maxDepth)
	if err != nil {
		return othello.Move{}, err
	}
	return result.Move, nil
}

// Search is like ChooseMove but also returns the score and statistics.
func (s *Searcher) Search(board othello.Board, perspective othello.Color, maxDepth int) (Result, error) {
	if maxDepth < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}

	if perspective != othello.BLACK && perspective != othello.WHITE {
		return Result{}, fmt.Errorf("%w: cannot search for %s", othello.ErrInvalidColor, perspective)
	}

	if checker, ok := s.rules.(boardChecker); ok {
		if err := checker.CheckBoard(board); err != nil {
			return Result{}, err
		}
	}

	if s.rules.IsGameOver(board) {
		return Result{}, ErrGameOver
	}

	if !s.rules.HasLegalMove(board, perspective) {
		return Result{}, fmt.Errorf("%w: %s", ErrNoLegalMoves, perspective)
	}

	t := &tree{
		rules:       s.rules,
		evaluator:   s.evaluator,
		policy:      s.policy,
		perspective: perspective,
		maxDepth:    maxDepth,
	}

	start := time.Now()
	move, score := t.maxStep(board, 0, math.Inf(-1), math.Inf(1))

	result := Result{
		Move:     move,
		Score:    score,
		Nodes:    t.nodes,
		Duration: time.Since(start),
		Policy:   s.policy,
		Depth:    maxDepth,
	}

	logStats(result)
	return result, nil
}

func logStats(result Result) {
	elapsedSeconds := result.Duration.Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(result.Nodes) / elapsedSeconds)
	}

	slog.Debug("search finished",
		"policy", result.Policy,
		"depth", result.Depth,
		"move", result.Move,
		"score", result.Score,
		"nodes", result.Nodes,
		"seconds", elapsedSeconds,
		"nodes_per_second", nodesPerSecond,
	)
}

// tree holds the state of a single search.
type tree struct {
	rules       Rules
	evaluator   evaluate.Evaluator
	policy      Policy
	perspective othello.Color
	maxDepth    int
	nodes       uint64
}

func (t *tree) evaluate(board othello.Board) float64 {
	return t.evaluator.Evaluate(board, t.perspective)
}

// child applies a move generated by the rules. The returned board is a new
// board owned by the caller's subtree.
func (t *tree) child(board othello.Board, move othello.Move, color othello.Color) othello.Board {
	child, err := t.rules.ApplyMove(board, move, color)
	if err != nil {
		// Moves come from LegalMoves, so this is a bug in the rules.
		panic(fmt.Sprintf("applying generated move %s for %s: %v", move, color, err))
	}
	return child
}

// maxStep searches a board where perspective is to move. Only the root call
// uses the returned move.
func (t *tree) maxStep(board othello.Board, depth int, alpha, beta float64) (othello.Move, float64) {
	t.nodes++

	if depth >= t.maxDepth {
		return othello.PassMove, t.evaluate(board)
	}

	moves := t.rules.LegalMoves(board, t.perspective)

	if len(moves) == 0 {
		if !t.rules.HasLegalMove(board, t.perspective.Opponent()) {
			return othello.PassMove, t.evaluate(board)
		}

		// Pass: the opponent moves again at the same depth.
		return othello.PassMove, t.opponentStep(board, depth, alpha, beta)
	}

	bestMove := moves[0]
	best := math.Inf(-1)

	for _, move := range moves {
		score := t.opponentStep(t.child(board, move, t.perspective), depth+1, alpha, beta)

		// Strictly greater, so ties keep the first move in scan order.
		if score > best {
			best = score
			bestMove = move
		}

		if t.policy == AlphaBeta {
			alpha = math.Max(alpha, best)
			if best > beta {
				return bestMove, best
			}
		}
	}

	return bestMove, best
}

func (t *tree) opponentStep(board othello.Board, depth int, alpha, beta float64) float64 {
	if t.policy == Expectimax {
		return t.chanceStep(board, depth)
	}
	return t.minStep(board, depth, alpha, beta)
}

// minStep searches a board where the opponent of perspective is to move.
func (t *tree) minStep(board othello.Board, depth int, alpha, beta float64) float64 {
	t.nodes++

	if depth >= t.maxDepth {
		return t.evaluate(board)
	}

	opponent := t.perspective.Opponent()
	moves := t.rules.LegalMoves(board, opponent)

	if len(moves) == 0 {
		if !t.rules.HasLegalMove(board, t.perspective) {
			return t.evaluate(board)
		}

		_, score := t.maxStep(board, depth, alpha, beta)
		return score
	}

	best := math.Inf(1)

	for _, move := range moves {
		_, score := t.maxStep(t.child(board, move, opponent), depth+1, alpha, beta)

		if score < best {
			best = score
		}

		if t.policy == AlphaBeta {
			beta = math.Min(beta, best)
			if best < alpha {
				return best
			}
		}
	}

	return best
}

// chanceStep averages the values of all replies of the opponent of perspective.
func (t *tree) chanceStep(board othello.Board, depth int) float64 {
	t.nodes++

	if depth >= t.maxDepth {
		return t.evaluate(board)
	}

	opponent := t.perspective.Opponent()
	moves := t.rules.LegalMoves(board, opponent)

	if len(moves) == 0 {
		if !t.rules.HasLegalMove(board, t.perspective) {
			return t.evaluate(board)
		}

		_, score := t.maxStep(board, depth, math.Inf(-1), math.Inf(1))
		return score
	}

	total := 0.0
	for _, move := range moves {
		_, score := t.maxStep(t.child(board, move, opponent), depth+1, math.Inf(-1), math.Inf(1))
		total += score
	}

	return total / float64(len(moves))
}
