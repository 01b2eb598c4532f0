package evaluate

import (
	"errors"
	"fmt"

	"github.com/lk16/reversi/internal/othello"
)

const (
	// CornerWeight is the value of owning a single corner. Corners cannot be
	// recaptured, so this outweighs the other terms.
	CornerWeight = 25.0

	// normalizedRange is the maximum absolute value of the piece and mobility terms.
	normalizedRange = 100.0
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator scores a board from the perspective of one color. Scores are
// symmetric around zero and positive values favor perspective.
type Evaluator interface {
	Evaluate(board othello.Board, perspective othello.Color) float64
}

// Func adapts a plain function to the Evaluator interface.
type Func func(board othello.Board, perspective othello.Color) float64

// Evaluate calls f.
func (f Func) Evaluate(board othello.Board, perspective othello.Color) float64 {
	return f(board, perspective)
}

// MobilitySource counts legal moves. It is implemented by *othello.Engine.
type MobilitySource interface {
	Mobility(board othello.Board, color othello.Color) int
}

// DiscDifference scores a board by the difference in disc count.
type DiscDifference struct{}

// Evaluate returns the number of discs of perspective minus those of the opponent.
func (DiscDifference) Evaluate(board othello.Board, perspective othello.Color) float64 {
	return float64(othello.FinalScore(board, perspective))
}

// Weighted combines disc difference, mobility difference and corner ownership.
type Weighted struct {
	mobility MobilitySource
}

// NewWeighted creates a Weighted evaluator that counts moves with mobility.
func NewWeighted(mobility MobilitySource) *Weighted {
	return &Weighted{mobility: mobility}
}

// normalizedDiff scales mine-theirs to [-100, 100].
func normalizedDiff(mine, theirs int) float64 {
	if mine+theirs == 0 {
		return 0
	}
	return normalizedRange * float64(mine-theirs) / float64(mine+theirs)
}

// Evaluate returns the sum of the piece, mobility and corner terms.
func (w *Weighted) Evaluate(board othello.Board, perspective othello.Color) float64 {
	opponent := perspective.Opponent()

	pieces := normalizedDiff(board.Count(perspective), board.Count(opponent))

	mobility := normalizedDiff(
		w.mobility.Mobility(board, perspective),
		w.mobility.Mobility(board, opponent),
	)

	corners := 0.0
	for _, corner := range board.Corners() {
		switch board.At(corner.Row, corner.Col) {
		case perspective:
			corners += CornerWeight
		case opponent:
			corners -= CornerWeight
		}
	}

	return pieces + mobility + corners
}

// Names lists the evaluators accepted by ByName.
var Names = []string{"discs", "weighted"}

// ByName returns the evaluator with the given name.
func ByName(name string, mobility MobilitySource) (Evaluator, error) {
	switch name {
	case "discs":
		return DiscDifference{}, nil
	case "weighted":
		if mobility == nil {
			return nil, fmt.Errorf("%w: %q needs a mobility source", ErrUnknownEvaluator, name)
		}
		return NewWeighted(mobility), nil
	default:
		return nil, fmt.Errorf("%w: %q, expected one of %v", ErrUnknownEvaluator, name, Names)
	}
}
