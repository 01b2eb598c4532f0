package othello

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrBoardSize   = errors.New("board size does not match engine")
)

// Engine implements the placement rules for one fixed board size. It holds no
// state besides the size, so one Engine can serve any number of searches.
type Engine struct {
	rows int
	cols int
}

// NewEngine creates an engine for boards with the given size.
func NewEngine(rows, cols int) (*Engine, error) {
	if _, err := NewBoardEmpty(rows, cols); err != nil {
		return nil, err
	}

	return &Engine{rows: rows, cols: cols}, nil
}

// NewEngineMust creates an engine and panics if the size is invalid.
func NewEngineMust(rows, cols int) *Engine {
	e, err := NewEngine(rows, cols)
	if err != nil {
		panic(err)
	}
	return e
}

// Rows returns the number of rows of boards handled by this engine.
func (e *Engine) Rows() int {
	return e.rows
}

// Cols returns the number of columns of boards handled by this engine.
func (e *Engine) Cols() int {
	return e.cols
}

// NewBoardStart returns the starting board for the engine's size.
func (e *Engine) NewBoardStart() Board {
	return NewBoardStartMust(e.rows, e.cols)
}

// CheckBoard returns an error if the board was not made for this engine.
func (e *Engine) CheckBoard(board Board) error {
	if board.rows != e.rows || board.cols != e.cols {
		return fmt.Errorf("%w: got %dx%d, engine uses %dx%d", ErrBoardSize, board.rows, board.cols, e.rows, e.cols)
	}
	return nil
}

// captures returns how many opponent discs are sandwiched between the empty
// square (row, col) and a disc of color in direction dir.
func captures(board Board, row, col int, dir Direction, color Color) int {
	opponent := color.Opponent()

	r, c := row+dir.DRow, col+dir.DCol
	count := 0

	for board.InBounds(r, c) && board.At(r, c) == opponent {
		count++
		r += dir.DRow
		c += dir.DCol
	}

	if count == 0 || !board.InBounds(r, c) || board.At(r, c) != color {
		return 0
	}

	return count
}

// IsLegal checks whether color may place a disc on move.
func (e *Engine) IsLegal(board Board, move Move, color Color) bool {
	if color != BLACK && color != WHITE {
		return false
	}

	if !board.InBounds(move.Row, move.Col) || board.At(move.Row, move.Col) != EMPTY {
		return false
	}

	for _, dir := range Directions {
		if captures(board, move.Row, move.Col, dir, color) > 0 {
			return true
		}
	}

	return false
}

// LegalMoves returns all legal moves for color, scanning rows top to bottom
// and each row left to right. The order is stable and used for tie-breaking.
func (e *Engine) LegalMoves(board Board, color Color) []Move {
	moves := make([]Move, 0)

	for row := range board.rows {
		for col := range board.cols {
			move := Move{Row: row, Col: col}
			if e.IsLegal(board, move, color) {
				moves = append(moves, move)
			}
		}
	}

	return moves
}

// HasLegalMove checks whether color has at least one legal move.
func (e *Engine) HasLegalMove(board Board, color Color) bool {
	for row := range board.rows {
		for col := range board.cols {
			if e.IsLegal(board, Move{Row: row, Col: col}, color) {
				return true
			}
		}
	}

	return false
}

// Mobility returns the number of legal moves for color.
func (e *Engine) Mobility(board Board, color Color) int {
	return len(e.LegalMoves(board, color))
}

// Flips returns the squares that would change color if color played move.
// It returns nil for illegal moves.
func (e *Engine) Flips(board Board, move Move, color Color) []Move {
	if !e.IsLegal(board, move, color) {
		return nil
	}

	flipped := make([]Move, 0)

	for _, dir := range Directions {
		n := captures(board, move.Row, move.Col, dir, color)
		for dist := 1; dist <= n; dist++ {
			flipped = append(flipped, Move{
				Row: move.Row + dist*dir.DRow,
				Col: move.Col + dist*dir.DCol,
			})
		}
	}

	return flipped
}

// ApplyMove places a disc of color on move and flips all captured discs.
//
// The input board is never modified: the move is validated first and the
// result is written to a clone. The side to move of the returned board is the
// opponent, unless the opponent has no legal move and color can move again.
func (e *Engine) ApplyMove(board Board, move Move, color Color) (Board, error) {
	if err := e.CheckBoard(board); err != nil {
		return Board{}, err
	}

	if color != BLACK && color != WHITE {
		return Board{}, fmt.Errorf("%w: %s cannot move", ErrInvalidColor, color)
	}

	if !board.InBounds(move.Row, move.Col) {
		return Board{}, fmt.Errorf("%w: %s is off the board", ErrInvalidMove, move)
	}

	if board.At(move.Row, move.Col) != EMPTY {
		return Board{}, fmt.Errorf("%w: %s is occupied", ErrInvalidMove, move)
	}

	flipped := e.Flips(board, move, color)
	if len(flipped) == 0 {
		return Board{}, fmt.Errorf("%w: %s captures no discs for %s", ErrInvalidMove, move, color)
	}

	child := board.Clone()
	child.set(move.Row, move.Col, color)
	for _, square := range flipped {
		child.set(square.Row, square.Col, color)
	}

	child.turn = color.Opponent()
	if !e.HasLegalMove(child, child.turn) && e.HasLegalMove(child, color) {
		child.turn = color
	}

	return child, nil
}

// IsGameOver checks if neither side has a legal move. This does not require
// the board to be full.
func (e *Engine) IsGameOver(board Board) bool {
	return !e.HasLegalMove(board, BLACK) && !e.HasLegalMove(board, WHITE)
}

// FinalScore returns the disc difference from the point of view of color.
func FinalScore(board Board, color Color) int {
	return board.Count(color) - board.Count(color.Opponent())
}

// Winner returns the color with the most discs, or EMPTY for a draw.
func Winner(board Board) Color {
	switch score := FinalScore(board, BLACK); {
	case score > 0:
		return BLACK
	case score < 0:
		return WHITE
	default:
		return EMPTY
	}
}
