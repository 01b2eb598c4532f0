package evaluate

import (
	"testing"

	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) othello.Board {
	t.Helper()

	board, err := othello.ParseBoard(s)
	require.NoError(t, err)
	return board
}

func TestDiscDifference(t *testing.T) {
	board := mustParse(t, "BBW./..../..../.... b")

	require.InDelta(t, 1.0, DiscDifference{}.Evaluate(board, othello.BLACK), 1e-9)
	require.InDelta(t, -1.0, DiscDifference{}.Evaluate(board, othello.WHITE), 1e-9)
}

func TestFunc(t *testing.T) {
	f := Func(func(_ othello.Board, perspective othello.Color) float64 {
		return float64(perspective)
	})

	require.InDelta(t, 1.0, f.Evaluate(othello.Board{}, othello.WHITE), 1e-9)
}

func TestWeighted(t *testing.T) {
	engine := othello.NewEngineMust(4, 4)
	w := NewWeighted(engine)

	tests := []struct {
		name  string
		board string
		want  float64
	}{
		{
			// Symmetric position: every term cancels out.
			name:  "start",
			board: "..../.WB./.BW./.... b",
			want:  0,
		},
		{
			// Black: 2 discs, white: 1 disc, black moves: c1, white moves: none.
			// pieces = 100*(2-1)/3, mobility = 100*(1-0)/1, one black corner.
			name:  "corner and mobility",
			board: "BW../B.../..../.... b",
			want:  100.0/3 + 100 + CornerWeight,
		},
		{
			// No discs and no moves for anyone.
			name:  "empty board",
			board: "..../..../..../.... b",
			want:  0,
		},
		{
			// Both sides own two corners and nobody can move.
			name:  "corners cancel",
			board: "B..W/..../..../W..B b",
			want:  0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mustParse(t, test.board)

			black := w.Evaluate(board, othello.BLACK)
			white := w.Evaluate(board, othello.WHITE)

			require.InDelta(t, test.want, black, 1e-9)
			require.InDelta(t, -black, white, 1e-9)
		})
	}
}

func TestByName(t *testing.T) {
	engine := othello.NewEngineMust(8, 8)

	evaluator, err := ByName("discs", engine)
	require.NoError(t, err)
	require.IsType(t, DiscDifference{}, evaluator)

	evaluator, err = ByName("weighted", engine)
	require.NoError(t, err)
	require.IsType(t, &Weighted{}, evaluator)

	_, err = ByName("weighted", nil)
	require.ErrorIs(t, err, ErrUnknownEvaluator)

	_, err = ByName("neural", engine)
	require.ErrorIs(t, err, ErrUnknownEvaluator)
}
