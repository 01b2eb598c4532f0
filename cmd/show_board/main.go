package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/evaluate"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

func main() {
	boardString := flag.String("board", "", "the board to show, defaults to the 8x8 start board")
	depth := flag.Int("depth", 0, "search depth for the suggested move, 0 disables the search")
	policy := flag.String("policy", string(search.AlphaBeta), "search policy: alphabeta, minimax or expectimax")
	evaluatorName := flag.String("evaluator", config.DefaultEvaluator, "evaluator: discs or weighted")
	flag.Parse()

	config.SetLogLevel()

	board := othello.NewBoardStartMust(config.DefaultBoardSize, config.DefaultBoardSize)
	if *boardString != "" {
		var err error
		board, err = othello.ParseBoard(*boardString)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	engine, err := othello.NewEngine(board.Rows(), board.Cols())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	moves := engine.LegalMoves(board, board.Turn())
	for _, line := range board.ASCIIArtLines(moves) {
		fmt.Println(line)
	}

	fmt.Printf("%s to move, black %d, white %d\n", board.Turn(), board.Count(othello.BLACK), board.Count(othello.WHITE))

	if engine.IsGameOver(board) {
		fmt.Printf("game over, winner: %s\n", othello.Winner(board))
		return
	}

	if *depth == 0 {
		return
	}

	searchPolicy, err := search.ParsePolicy(*policy)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	evaluator, err := evaluate.ByName(*evaluatorName, engine)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	searcher := search.NewSearcherMust(engine, evaluator, search.WithPolicy(searchPolicy))
	result, err := searcher.Search(board, board.Turn(), *depth)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("best move: %s (score %.2f, %d nodes, %s)\n", result.Move, result.Score, result.Nodes, result.Duration)
}
