package othello

import (
	"fmt"
	"strconv"
	"strings"
)

// Move is a target square. The color placing the disc is passed separately.
type Move struct {
	Row int
	Col int
}

// PassMove marks a skipped turn in a game history. It is never a legal placement.
var PassMove = Move{Row: -1, Col: -1}

// Direction is a step between neighbouring squares.
type Direction struct {
	DRow int
	DCol int
}

// Directions lists the 8 directions in which discs can be captured.
var Directions = [8]Direction{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// String returns the field notation of the move, e.g. "d3" for row 2, column 3.
func (m Move) String() string {
	if m == PassMove {
		return "--"
	}

	if m.Col < 0 || m.Col >= MaxSize || m.Row < 0 {
		return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
	}

	return string(rune('a'+m.Col)) + strconv.Itoa(m.Row+1)
}

// ParseMove converts field notation (e.g. "d3") to a Move.
// PassMove is returned for "--", "ps" and "pa".
func ParseMove(field string) (Move, error) {
	field = strings.ToLower(strings.TrimSpace(field))

	if field == "--" || field == "ps" || field == "pa" {
		return PassMove, nil
	}

	if len(field) < 2 || field[0] < 'a' || field[0] >= 'a'+MaxSize {
		return Move{}, fmt.Errorf("invalid field: %q", field)
	}

	row, err := strconv.Atoi(field[1:])
	if err != nil || row < 1 || row > MaxSize {
		return Move{}, fmt.Errorf("invalid field: %q", field)
	}

	return Move{Row: row - 1, Col: int(field[0] - 'a')}, nil
}

// ParseMoveMust is like ParseMove but panics on invalid input.
func ParseMoveMust(field string) Move {
	move, err := ParseMove(field)
	if err != nil {
		panic(err)
	}
	return move
}
