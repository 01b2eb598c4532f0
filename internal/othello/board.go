package othello

import (
	"errors"
	"fmt"
	"strings"
)

// Color is the content of a square or the side to move.
type Color int8

const (
	BLACK Color = -1
	EMPTY Color = 0
	WHITE Color = 1
)

const (
	MinSize = 2
	MaxSize = 26
)

var (
	ErrInvalidSize  = errors.New("invalid board size")
	ErrInvalidColor = errors.New("invalid color")
)

// Opponent returns the other side. The opponent of EMPTY is EMPTY.
func (c Color) Opponent() Color {
	return -c
}

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	case EMPTY:
		return "empty"
	default:
		return fmt.Sprintf("color(%d)", int8(c))
	}
}

// ParseColor converts "black", "white", "b" or "w" (any case) to a Color.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return BLACK, nil
	case "white", "w":
		return WHITE, nil
	default:
		return EMPTY, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
}

// Board is a rectangular grid of squares together with the side to move.
//
// Board values share their squares on assignment. All operations in this
// package return new boards; use Clone before mutating a board yourself.
type Board struct {
	rows  int
	cols  int
	cells []Color
	turn  Color
}

// NewBoardEmpty creates a board without any discs. Black moves first.
func NewBoardEmpty(rows, cols int) (Board, error) {
	if rows < MinSize || rows > MaxSize || cols < MinSize || cols > MaxSize {
		return Board{}, fmt.Errorf("%w: %dx%d, sides must be between %d and %d", ErrInvalidSize, rows, cols, MinSize, MaxSize)
	}

	return Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Color, rows*cols),
		turn:  BLACK,
	}, nil
}

// NewBoardStart creates a board with the four center discs split diagonally.
func NewBoardStart(rows, cols int) (Board, error) {
	b, err := NewBoardEmpty(rows, cols)
	if err != nil {
		return Board{}, err
	}

	midRow, midCol := rows/2, cols/2
	b.set(midRow-1, midCol-1, WHITE)
	b.set(midRow, midCol, WHITE)
	b.set(midRow-1, midCol, BLACK)
	b.set(midRow, midCol-1, BLACK)

	return b, nil
}

// NewBoardStartMust is like NewBoardStart but panics on an invalid size.
func NewBoardStartMust(rows, cols int) Board {
	b, err := NewBoardStart(rows, cols)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseBoard reads the format written by Board.String, for example
// "..../.WB./.BW./.... b".
func ParseBoard(s string) (Board, error) {
	grid, turnField, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Board{}, errors.New("board string must end with a space and the side to move")
	}

	turn, err := ParseColor(strings.TrimSpace(turnField))
	if err != nil {
		return Board{}, fmt.Errorf("invalid turn: %w", err)
	}

	lines := strings.Split(grid, "/")
	cols := len(lines[0])

	b, err := NewBoardEmpty(len(lines), cols)
	if err != nil {
		return Board{}, err
	}

	for row, line := range lines {
		if len(line) != cols {
			return Board{}, fmt.Errorf("row %d has %d squares, expected %d", row+1, len(line), cols)
		}

		for col := range cols {
			switch line[col] {
			case 'B', 'b', 'X', 'x':
				b.set(row, col, BLACK)
			case 'W', 'w', 'O', 'o':
				b.set(row, col, WHITE)
			case '.', '-':
			default:
				return Board{}, fmt.Errorf("invalid square %q at row %d", line[col], row+1)
			}
		}
	}

	b.turn = turn
	return b, nil
}

// Rows returns the number of rows.
func (b Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b Board) Cols() int {
	return b.cols
}

// Turn returns the side to move.
func (b Board) Turn() Color {
	return b.turn
}

// WithTurn returns a copy of the board with a different side to move.
func (b Board) WithTurn(turn Color) Board {
	clone := b.Clone()
	clone.turn = turn
	return clone
}

// InBounds checks whether a square lies on the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// At returns the content of a square. Squares outside the board are EMPTY.
func (b Board) At(row, col int) Color {
	if !b.InBounds(row, col) {
		return EMPTY
	}
	return b.cells[row*b.cols+col]
}

func (b Board) set(row, col int, color Color) {
	b.cells[row*b.cols+col] = color
}

// Count returns the number of squares with the given content.
func (b Board) Count(color Color) int {
	count := 0
	for _, cell := range b.cells {
		if cell == color {
			count++
		}
	}
	return count
}

// CountDiscs returns the number of non-empty squares.
func (b Board) CountDiscs() int {
	return len(b.cells) - b.Count(EMPTY)
}

// Corners returns the four corner squares.
func (b Board) Corners() [4]Move {
	return [4]Move{
		{Row: 0, Col: 0},
		{Row: 0, Col: b.cols - 1},
		{Row: b.rows - 1, Col: 0},
		{Row: b.rows - 1, Col: b.cols - 1},
	}
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)

	return Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: cells,
		turn:  b.turn,
	}
}

// Equal checks if two boards have the same size, squares and turn.
func (b Board) Equal(other Board) bool {
	if b.rows != other.rows || b.cols != other.cols || b.turn != other.turn {
		return false
	}

	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// ASCIIArtLines returns the ascii art lines for the board. Squares in moves
// are marked with a dot.
func (b Board) ASCIIArtLines(moves []Move) []string {
	marked := make(map[Move]bool, len(moves))
	for _, move := range moves {
		marked[move] = true
	}

	header := "+--"
	for col := range b.cols {
		header += string(rune('a'+col)) + "-"
	}
	header += "+"

	lines := make([]string, 0, b.rows+2)
	lines = append(lines, header)

	for row := range b.rows {
		line := fmt.Sprintf("%2d ", row+1)

		for col := range b.cols {
			switch {
			case b.At(row, col) == WHITE:
				line += "○ "
			case b.At(row, col) == BLACK:
				line += "● "
			case marked[Move{Row: row, Col: col}]:
				line += "· "
			default:
				line += "  "
			}
		}

		lines = append(lines, line+"|")
	}

	lines = append(lines, "+"+strings.Repeat("-", 2*b.cols+2)+"+")
	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print() {
	for _, line := range b.ASCIIArtLines(nil) {
		fmt.Println(line)
	}
}

// String returns the text form read by ParseBoard.
func (b Board) String() string {
	var sb strings.Builder

	for row := range b.rows {
		if row > 0 {
			sb.WriteByte('/')
		}

		for col := range b.cols {
			switch b.At(row, col) {
			case BLACK:
				sb.WriteByte('B')
			case WHITE:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
	}

	if b.turn == WHITE {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}

	return sb.String()
}
