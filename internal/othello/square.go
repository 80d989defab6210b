package othello

import (
	"fmt"
	"strings"
)

const (
	// Size is the width and height of the board.
	Size = 8

	// Squares is the number of squares on the board.
	Squares = Size * Size
)

// Cell is the state of a single square. The numeric values match the position file format.
type Cell int

const (
	EMPTY Cell = 0
	BLACK Cell = 1
	WHITE Cell = 2

	// DRAW is the winner of a game that ended with equal disc counts.
	DRAW = EMPTY
)

// Opponent returns the other side. EMPTY has no opponent and is returned as is.
func (c Cell) Opponent() Cell {
	switch c {
	case BLACK:
		return WHITE
	case WHITE:
		return BLACK
	default:
		return c
	}
}

// IsSide returns whether the cell is BLACK or WHITE.
func (c Cell) IsSide() bool {
	return c == BLACK || c == WHITE
}

// IsValid returns whether the cell holds one of the three known states.
func (c Cell) IsValid() bool {
	return c == EMPTY || c.IsSide()
}

func (c Cell) String() string {
	switch c {
	case EMPTY:
		return "empty"
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	default:
		return fmt.Sprintf("cell(%d)", int(c))
	}
}

// Square addresses a square on the board, 0-indexed.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoSquare is used where there is no square, such as the last move of a root position.
var NoSquare = Square{Row: -1, Col: -1}

// directions holds the 8 unit vectors a capturing run can follow.
var directions = [8]Square{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// InBounds returns whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) add(dir Square) Square {
	return Square{Row: s.Row + dir.Row, Col: s.Col + dir.Col}
}

// String returns the square in the "row col" form used by the position file format.
func (s Square) String() string {
	return fmt.Sprintf("%d %d", s.Row, s.Col)
}

// Field returns the field notation of the square, e.g. "d3" for row 2, column 3.
func (s Square) Field() string {
	if !s.InBounds() {
		return "--"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, s.Row+1)
}

// FieldToSquare converts a field notation (e.g. "a1", "h8") to a square.
func FieldToSquare(field string) (Square, error) {
	if len(field) != 2 {
		return NoSquare, fmt.Errorf("invalid field length: %s", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return NoSquare, fmt.Errorf("%w: %s", ErrOutOfBounds, field)
	}

	return Square{Row: int(field[1] - '1'), Col: int(field[0] - 'a')}, nil
}
