// Package selfplay plays engine-vs-engine games.
package selfplay

import (
	"context"
	"fmt"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"golang.org/x/sync/errgroup"
)

// Player chooses moves for one side.
type Player struct {
	Name    string
	Chooser search.Chooser
	Depth   int
}

// GameResult describes a finished game.
type GameResult struct {
	Index int

	// FirstColor is the color played by the first player passed to Run.
	FirstColor othello.Color

	Black      string
	White      string
	BlackDiscs int
	WhiteDiscs int
	Winner     othello.Color
	Transcript string
}

// PlayGame plays one game from the engine's start board until neither side can move.
// It stops between moves when ctx is done.
func PlayGame(ctx context.Context, engine *othello.Engine, black, white Player) (GameResult, error) {
	game := othello.NewGame(engine)

	for !game.IsOver() {
		if err := ctx.Err(); err != nil {
			return GameResult{}, fmt.Errorf("stopped after %q: %w", game.Transcript(), err)
		}

		board := game.Board()

		player := black
		if board.Turn() == othello.WHITE {
			player = white
		}

		move, err := player.Chooser.ChooseMove(board, board.Turn(), player.Depth)
		if err != nil {
			return GameResult{}, fmt.Errorf("%s failed to choose a move after %q: %w", player.Name, game.Transcript(), err)
		}

		if err = game.PushMove(move); err != nil {
			return GameResult{}, fmt.Errorf("%s chose %s after %q: %w", player.Name, move, game.Transcript(), err)
		}
	}

	board := game.Board()

	return GameResult{
		Black:      black.Name,
		White:      white.Name,
		BlackDiscs: board.Count(othello.BLACK),
		WhiteDiscs: board.Count(othello.WHITE),
		Winner:     othello.Winner(board),
		Transcript: game.Transcript(),
	}, nil
}

// Run plays games between two players, swapping colors every game.
// At most concurrency games run at the same time. The first error cancels the remaining games.
func Run(ctx context.Context, engine *othello.Engine, first, second Player, games, concurrency int) ([]GameResult, error) {
	results := make([]GameResult, games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	for i := range games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			black, white := first, second
			firstColor := othello.BLACK
			if i%2 == 1 {
				black, white = second, first
				firstColor = othello.WHITE
			}

			result, err := PlayGame(ctx, engine, black, white)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}

			result.Index = i
			result.FirstColor = firstColor
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Summary counts the wins of the first and second player passed to Run.
type Summary struct {
	Games      int
	FirstWins  int
	SecondWins int
	Draws      int
}

// Summarize counts the wins and draws in results.
func Summarize(results []GameResult) Summary {
	summary := Summary{Games: len(results)}

	for _, result := range results {
		switch result.Winner {
		case othello.EMPTY:
			summary.Draws++
		case result.FirstColor:
			summary.FirstWins++
		default:
			summary.SecondWins++
		}
	}

	return summary
}
