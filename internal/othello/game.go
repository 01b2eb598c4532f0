package othello

import (
	"fmt"
	"strings"
)

// Game represents an Othello game, either complete or in progress.
type Game struct {
	engine *Engine

	// moves is the list of moves in the game. Pass moves are added automatically.
	moves []Move

	// start board is the board before any move is played. This allows for custom start positions.
	start Board
}

// NewGameWithStart creates a new empty game with a custom start board.
func NewGameWithStart(engine *Engine, start Board) (*Game, error) {
	if err := engine.CheckBoard(start); err != nil {
		return nil, err
	}

	return &Game{
		engine: engine,
		moves:  make([]Move, 0),
		start:  start.Clone(),
	}, nil
}

// NewGame creates a new game from the engine's starting board.
func NewGame(engine *Engine) *Game {
	return &Game{
		engine: engine,
		moves:  make([]Move, 0),
		start:  engine.NewBoardStart(),
	}
}

// Board returns the board after all moves in the game.
func (g *Game) Board() Board {
	return g.getBoard(len(g.moves))
}

// getBoard returns the board after doing the moves up to the given move index.
func (g *Game) getBoard(moveIndex int) Board {
	board := g.start

	for i := range moveIndex {
		move := g.moves[i]

		if move == PassMove {
			continue
		}

		// Moves were validated when pushed, so replaying them cannot fail.
		next, err := g.engine.ApplyMove(board, move, board.Turn())
		if err != nil {
			panic(fmt.Sprintf("replaying move %d (%s): %v", i, move, err))
		}
		board = next
	}

	return board
}

// Moves returns a copy of the moves played so far, including passes.
func (g *Game) Moves() []Move {
	moves := make([]Move, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// PushMove plays a move for the side to move.
func (g *Game) PushMove(move Move) error {
	board := g.Board()

	next, err := g.engine.ApplyMove(board, move, board.Turn())
	if err != nil {
		return fmt.Errorf("failed to push move: %w", err)
	}

	g.moves = append(g.moves, move)

	// Record a pass if the opponent cannot move but we can.
	if next.Turn() == board.Turn() {
		g.moves = append(g.moves, PassMove)
	}

	return nil
}

// PopMove undoes the last move.
func (g *Game) PopMove() {
	if len(g.moves) == 0 {
		return
	}

	poppedMoves := 1
	// A pass is never the last entry without the move that caused it.
	if g.moves[len(g.moves)-1] == PassMove {
		poppedMoves = 2
	}

	g.moves = g.moves[:len(g.moves)-poppedMoves]
}

// IsOver checks if neither side can move.
func (g *Game) IsOver() bool {
	return g.engine.IsGameOver(g.Board())
}

// Transcript returns the moves in field notation separated by spaces.
func (g *Game) Transcript() string {
	fields := make([]string, len(g.moves))
	for i, move := range g.moves {
		fields[i] = move.String()
	}
	return strings.Join(fields, " ")
}
