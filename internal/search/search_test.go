package search //nolint:testpackage

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) othello.Board {
	t.Helper()

	board, err := othello.ParseBoard(s)
	require.NoError(t, err)
	return board
}

// referenceValue is a plain recursive minimax/expectimax that shares no code
// with the searcher.
func referenceValue(
	engine *othello.Engine,
	evaluator evaluate.Evaluator,
	board othello.Board,
	toMove, perspective othello.Color,
	depth, maxDepth int,
	average bool,
) float64 {
	if depth == maxDepth || engine.IsGameOver(board) {
		return evaluator.Evaluate(board, perspective)
	}

	moves := engine.LegalMoves(board, toMove)
	if len(moves) == 0 {
		return referenceValue(engine, evaluator, board, toMove.Opponent(), perspective, depth, maxDepth, average)
	}

	values := make([]float64, 0, len(moves))
	for _, move := range moves {
		child, err := engine.ApplyMove(board, move, toMove)
		if err != nil {
			panic(err)
		}
		values = append(values, referenceValue(engine, evaluator, child, toMove.Opponent(), perspective, depth+1, maxDepth, average))
	}

	switch {
	case toMove == perspective:
		best := math.Inf(-1)
		for _, v := range values {
			best = math.Max(best, v)
		}
		return best
	case average:
		total := 0.0
		for _, v := range values {
			total += v
		}
		return total / float64(len(values))
	default:
		best := math.Inf(1)
		for _, v := range values {
			best = math.Min(best, v)
		}
		return best
	}
}

// randomPositions returns non-terminal boards reached by random play where
// the side to move has a legal move.
func randomPositions(t *testing.T, engine *othello.Engine, count int, seed int64) []othello.Board {
	t.Helper()

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec
	positions := make([]othello.Board, 0, count)

	for len(positions) < count {
		board := engine.NewBoardStart()
		plies := rng.Intn(engine.Rows() * engine.Cols())

		for range plies {
			if engine.IsGameOver(board) {
				break
			}

			moves := engine.LegalMoves(board, board.Turn())
			next, err := engine.ApplyMove(board, moves[rng.Intn(len(moves))], board.Turn())
			require.NoError(t, err)
			board = next
		}

		if !engine.IsGameOver(board) {
			positions = append(positions, board)
		}
	}

	return positions
}

func TestNewSearcher(t *testing.T) {
	engine := othello.NewEngineMust(8, 8)

	s, err := NewSearcher(engine, evaluate.DiscDifference{})
	require.NoError(t, err)
	require.Equal(t, AlphaBeta, s.Policy())

	s, err = NewSearcher(engine, evaluate.DiscDifference{}, WithPolicy(Expectimax))
	require.NoError(t, err)
	require.Equal(t, Expectimax, s.Policy())

	_, err = NewSearcher(engine, nil)
	require.ErrorIs(t, err, ErrNoEvaluator)

	_, err = NewSearcher(nil, evaluate.DiscDifference{})
	require.ErrorIs(t, err, ErrNoRules)

	_, err = NewSearcher(engine, evaluate.DiscDifference{}, WithPolicy("negascout"))
	require.ErrorIs(t, err, ErrUnknownPolicy)

	require.Panics(t, func() { NewSearcherMust(engine, nil) })
}

func TestParsePolicy(t *testing.T) {
	for _, policy := range Policies {
		parsed, err := ParsePolicy(string(policy))
		require.NoError(t, err)
		require.Equal(t, policy, parsed)
	}

	_, err := ParsePolicy("mcts")
	require.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestSearcher_SearchErrors(t *testing.T) {
	engine := othello.NewEngineMust(4, 4)
	s := NewSearcherMust(engine, evaluate.DiscDifference{})

	tests := []struct {
		name        string
		board       othello.Board
		perspective othello.Color
		depth       int
		wantErr     error
	}{
		{
			name:        "zero depth",
			board:       engine.NewBoardStart(),
			perspective: othello.BLACK,
			depth:       0,
			wantErr:     ErrInvalidDepth,
		},
		{
			name:        "empty perspective",
			board:       engine.NewBoardStart(),
			perspective: othello.EMPTY,
			depth:       1,
			wantErr:     othello.ErrInvalidColor,
		},
		{
			name:        "wrong board size",
			board:       othello.NewBoardStartMust(8, 8),
			perspective: othello.BLACK,
			depth:       1,
			wantErr:     othello.ErrBoardSize,
		},
		{
			name:        "game over",
			board:       mustParse(t, "BBB./BBBB/BBBB/BBBB w"),
			perspective: othello.BLACK,
			depth:       1,
			wantErr:     ErrGameOver,
		},
		{
			name:        "perspective must pass",
			board:       mustParse(t, "WB../..../..../.... b"),
			perspective: othello.BLACK,
			depth:       1,
			wantErr:     ErrNoLegalMoves,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := s.Search(test.board, test.perspective, test.depth)
			require.ErrorIs(t, err, test.wantErr)

			_, err = s.ChooseMove(test.board, test.perspective, test.depth)
			require.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestSearcher_TiesKeepScanOrder(t *testing.T) {
	engine := othello.NewEngineMust(8, 8)
	board := engine.NewBoardStart()

	for _, policy := range Policies {
		t.Run(string(policy), func(t *testing.T) {
			s := NewSearcherMust(engine, evaluate.DiscDifference{}, WithPolicy(policy))

			// Every opening move flips one disc, so all moves score 4-1.
			result, err := s.Search(board, othello.BLACK, 1)
			require.NoError(t, err)
			require.Equal(t, othello.ParseMoveMust("d3"), result.Move)
			require.InDelta(t, 3.0, result.Score, 1e-9)

			// The perspective does not have to be the side to move of the board.
			move, err := s.ChooseMove(board, othello.WHITE, 1)
			require.NoError(t, err)
			require.Equal(t, othello.ParseMoveMust("e3"), move)
		})
	}
}

func TestSearcher_PassContinuesSearch(t *testing.T) {
	engine := othello.NewEngineMust(4, 4)

	// White can play c1 or b4. After either move black has to pass and white
	// plays the other one, ending with 6 white discs and no black discs.
	board := mustParse(t, "WB../..../..../..BW w")

	tests := []struct {
		depth     int
		wantScore float64
	}{
		{depth: 1, wantScore: 3},
		{depth: 2, wantScore: 6},
		{depth: 5, wantScore: 6},
	}

	for _, policy := range Policies {
		for _, test := range tests {
			s := NewSearcherMust(engine, evaluate.DiscDifference{}, WithPolicy(policy))

			result, err := s.Search(board, othello.WHITE, test.depth)
			require.NoError(t, err)
			require.Equal(t, othello.ParseMoveMust("c1"), result.Move)
			require.InDelta(t, test.wantScore, result.Score, 1e-9, "policy %s depth %d", policy, test.depth)
		}
	}
}

func TestSearcher_PruningPreservesResult(t *testing.T) {
	for _, size := range [][2]int{{6, 6}, {8, 8}} {
		engine := othello.NewEngineMust(size[0], size[1])
		positions := randomPositions(t, engine, 15, int64(size[0]))

		evaluators := map[string]evaluate.Evaluator{
			"discs":    evaluate.DiscDifference{},
			"weighted": evaluate.NewWeighted(engine),
		}

		for name, evaluator := range evaluators {
			alphaBeta := NewSearcherMust(engine, evaluator, WithPolicy(AlphaBeta))
			minimax := NewSearcherMust(engine, evaluator, WithPolicy(Minimax))

			for i, board := range positions {
				perspective := board.Turn()

				for depth := 1; depth <= 3; depth++ {
					pruned, err := alphaBeta.Search(board, perspective, depth)
					require.NoError(t, err)

					full, err := minimax.Search(board, perspective, depth)
					require.NoError(t, err)

					require.InDelta(t, full.Score, pruned.Score, 1e-9, "%s position %d depth %d", name, i, depth)
					require.Equal(t, full.Move, pruned.Move, "%s position %d depth %d", name, i, depth)
					require.LessOrEqual(t, pruned.Nodes, full.Nodes)

					want := referenceValue(engine, evaluator, board, perspective, perspective, 0, depth, false)
					require.InDelta(t, want, full.Score, 1e-9)
				}
			}
		}
	}
}

func TestSearcher_Expectimax(t *testing.T) {
	engine := othello.NewEngineMust(6, 6)
	positions := randomPositions(t, engine, 15, 7)
	evaluator := evaluate.NewWeighted(engine)

	expectimax := NewSearcherMust(engine, evaluator, WithPolicy(Expectimax))
	minimax := NewSearcherMust(engine, evaluator, WithPolicy(Minimax))

	for i, board := range positions {
		perspective := board.Turn()

		for depth := 1; depth <= 3; depth++ {
			expected, err := expectimax.Search(board, perspective, depth)
			require.NoError(t, err)

			want := referenceValue(engine, evaluator, board, perspective, perspective, 0, depth, true)
			require.InDelta(t, want, expected.Score, 1e-6, "position %d depth %d", i, depth)

			// An average is never below the minimum.
			worst, err := minimax.Search(board, perspective, depth)
			require.NoError(t, err)
			require.GreaterOrEqual(t, expected.Score+1e-9, worst.Score)
		}
	}
}

func TestTree_OpponentReplies(t *testing.T) {
	engine := othello.NewEngineMust(4, 4)

	// White can flip two discs with d1, or a single disc with a3 or c3.
	// Black leads by 3 - 2*flipped discs afterwards.
	board := mustParse(t, "WBB./BBB./..../.... w")

	newTree := func(policy Policy) *tree {
		return &tree{
			rules:       engine,
			evaluator:   evaluate.DiscDifference{},
			policy:      policy,
			perspective: othello.BLACK,
			maxDepth:    2,
		}
	}

	chance := newTree(Expectimax)
	require.InDelta(t, 1.0/3, chance.chanceStep(board, 1), 1e-9)
	require.Equal(t, uint64(4), chance.nodes)

	minimum := newTree(Minimax)
	require.InDelta(t, -1.0, minimum.minStep(board, 1, math.Inf(-1), math.Inf(1)), 1e-9)
	require.Equal(t, uint64(4), minimum.nodes)
}

func TestSearcher_DoesNotMutateBoards(t *testing.T) {
	engine := othello.NewEngineMust(6, 6)
	board := randomPositions(t, engine, 1, 3)[0]
	before := board.String()

	type seen struct {
		board othello.Board
		text  string
	}
	evaluated := make([]seen, 0)

	evaluator := evaluate.Func(func(b othello.Board, perspective othello.Color) float64 {
		evaluated = append(evaluated, seen{board: b, text: b.String()})
		return float64(othello.FinalScore(b, perspective))
	})

	for _, policy := range Policies {
		evaluated = evaluated[:0]
		s := NewSearcherMust(engine, evaluator, WithPolicy(policy))

		_, err := s.Search(board, board.Turn(), 3)
		require.NoError(t, err)
		require.Equal(t, before, board.String())

		require.NotEmpty(t, evaluated)
		for _, e := range evaluated {
			require.Equal(t, e.text, e.board.String())
		}
	}
}

func TestRandom_ChooseMove(t *testing.T) {
	engine := othello.NewEngineMust(8, 8)
	r := NewRandom(engine, 1)
	board := engine.NewBoardStart()

	for range 20 {
		move, err := r.ChooseMove(board, othello.BLACK, 0)
		require.NoError(t, err)
		require.True(t, engine.IsLegal(board, move, othello.BLACK))
	}

	stuck := mustParse(t, "WB../..../..../.... b")
	_, err := NewRandom(othello.NewEngineMust(4, 4), 1).ChooseMove(stuck, othello.BLACK, 0)
	require.ErrorIs(t, err, ErrNoLegalMoves)

	var _ Chooser = r
	var _ Chooser = NewSearcherMust(engine, evaluate.DiscDifference{})
}
