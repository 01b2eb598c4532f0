package search

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/lk16/reversi/internal/othello"
)

// Random picks a uniformly random legal move. It ignores the depth.
type Random struct {
	rules Rules

	// rng is not safe for concurrent use, rngMutex protects it
	rng      *rand.Rand
	rngMutex sync.Mutex
}

// NewRandom creates a Random chooser with a fixed seed.
func NewRandom(rules Rules, seed int64) *Random {
	return &Random{
		rules: rules,
		rng:   rand.New(rand.NewSource(seed)), //nolint:gosec
	}
}

// ChooseMove returns a random legal move for color.
func (r *Random) ChooseMove(board othello.Board, color othello.Color, _ int) (othello.Move, error) {
	moves := r.rules.LegalMoves(board, color)
	if len(moves) == 0 {
		return othello.Move{}, fmt.Errorf("%w: %s", ErrNoLegalMoves, color)
	}

	r.rngMutex.Lock()
	defer r.rngMutex.Unlock()

	return moves[r.rng.Intn(len(moves))], nil
}
