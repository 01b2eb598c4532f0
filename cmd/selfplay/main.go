package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/selfplay"
)

// playerFlags describes one player on the command line.
type playerFlags struct {
	policy    *string
	evaluator *string
	depth     *int
	seed      *int64
}

func registerPlayer(prefix, policy, evaluator string) playerFlags {
	return playerFlags{
		policy:    flag.String(prefix+"-policy", policy, "alphabeta, minimax, expectimax or random"),
		evaluator: flag.String(prefix+"-evaluator", evaluator, "discs or weighted"),
		depth:     flag.Int(prefix+"-depth", config.DefaultSearchDepth, "search depth"),
		seed:      flag.Int64(prefix+"-seed", 1, "seed of the random policy"),
	}
}

func (f playerFlags) build(engine *othello.Engine) (selfplay.Player, error) {
	if *f.policy == "random" {
		return selfplay.Player{
			Name:    "random",
			Chooser: search.NewRandom(engine, *f.seed),
		}, nil
	}

	policy, err := search.ParsePolicy(*f.policy)
	if err != nil {
		return selfplay.Player{}, err
	}

	evaluator, err := evaluate.ByName(*f.evaluator, engine)
	if err != nil {
		return selfplay.Player{}, err
	}

	searcher, err := search.NewSearcher(engine, evaluator, search.WithPolicy(policy))
	if err != nil {
		return selfplay.Player{}, err
	}

	return selfplay.Player{
		Name:    fmt.Sprintf("%s-%s-d%d", policy, *f.evaluator, *f.depth),
		Chooser: searcher,
		Depth:   *f.depth,
	}, nil
}

func main() {
	games := flag.Int("games", 10, "number of games to play")
	concurrency := flag.Int("concurrency", runtime.NumCPU(), "number of games played at the same time")
	rows := flag.Int("rows", config.DefaultBoardSize, "board rows")
	cols := flag.Int("cols", config.DefaultBoardSize, "board columns")
	first := registerPlayer("first", string(search.AlphaBeta), "weighted")
	second := registerPlayer("second", "random", "discs")
	flag.Parse()

	config.SetLogLevel()

	engine, err := othello.NewEngine(*rows, *cols)
	if err != nil {
		slog.Error("Invalid board size", "error", err)
		os.Exit(1)
	}

	firstPlayer, err := first.build(engine)
	if err != nil {
		slog.Error("Invalid first player", "error", err)
		os.Exit(1)
	}

	secondPlayer, err := second.build(engine)
	if err != nil {
		slog.Error("Invalid second player", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := selfplay.Run(ctx, engine, firstPlayer, secondPlayer, *games, *concurrency)
	if err != nil {
		slog.Error("Self-play failed", "error", err)
		os.Exit(1)
	}

	for _, result := range results {
		slog.Info("Game finished",
			"game", result.Index,
			"black", result.Black,
			"white", result.White,
			"black_discs", result.BlackDiscs,
			"white_discs", result.WhiteDiscs,
			"transcript", result.Transcript,
		)
	}

	summary := selfplay.Summarize(results)
	slog.Info("Self-play finished",
		"games", summary.Games,
		"first", firstPlayer.Name,
		"first_wins", summary.FirstWins,
		"second", secondPlayer.Name,
		"second_wins", summary.SecondWins,
		"draws", summary.Draws,
	)
}
