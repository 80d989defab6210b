package othello

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds  = errors.New("square out of bounds")
	ErrIllegalMove  = errors.New("illegal move")
	ErrInvalidCell  = errors.New("invalid cell value")
	ErrInvalidTurn  = errors.New("invalid turn")
	ErrInvalidBoard = errors.New("invalid board string")
)

// Grid holds the cells of a board, indexed as grid[row][col].
type Grid [Size][Size]Cell

// Counts is a tally of the cells by state. The fields always sum to 64.
type Counts struct {
	Empty int `json:"empty"`
	Black int `json:"black"`
	White int `json:"white"`
}

// Of returns the count for a cell state.
func (c Counts) Of(cell Cell) int {
	switch cell {
	case BLACK:
		return c.Black
	case WHITE:
		return c.White
	default:
		return c.Empty
	}
}

func (c *Counts) add(cell Cell, n int) {
	switch cell {
	case BLACK:
		c.Black += n
	case WHITE:
		c.White += n
	default:
		c.Empty += n
	}
}

// Position is a game position with everything that can be derived from it directly.
// Positions are values: no method modifies its receiver.
type Position struct {
	grid     Grid
	counts   Counts
	turn     Cell
	moves    []Square
	terminal bool
	winner   Cell
	lastMove Square
}

// NewPositionStart creates the starting position with black to move.
func NewPositionStart() Position {
	var grid Grid
	grid[3][3], grid[4][4] = WHITE, WHITE
	grid[3][4], grid[4][3] = BLACK, BLACK

	pos := Position{
		grid:     grid,
		counts:   countCells(&grid),
		turn:     BLACK,
		lastMove: NoSquare,
	}
	pos.moves = pos.LegalMoves(BLACK)
	return pos
}

// NewPositionFromGrid creates a position from a grid, the side to move and its legal moves.
// The moves are trusted as given. Use NewPositionFromGridGenerated to compute them instead.
func NewPositionFromGrid(grid Grid, turn Cell, moves []Square) (Position, error) {
	if err := validateGrid(&grid, turn); err != nil {
		return Position{}, err
	}

	for _, move := range moves {
		if !move.InBounds() {
			return Position{}, fmt.Errorf("%w: %s", ErrOutOfBounds, move)
		}
	}

	return Position{
		grid:     grid,
		counts:   countCells(&grid),
		turn:     turn,
		moves:    append([]Square(nil), moves...),
		lastMove: NoSquare,
	}, nil
}

// NewPositionFromGridGenerated creates a position from a grid and the side to move.
// Unlike NewPositionFromGrid, the legal moves are generated, forced passes are applied and
// the game end is detected.
func NewPositionFromGridGenerated(grid Grid, turn Cell) (Position, error) {
	if err := validateGrid(&grid, turn); err != nil {
		return Position{}, err
	}

	pos := Position{
		grid:     grid,
		counts:   countCells(&grid),
		turn:     turn,
		lastMove: NoSquare,
	}
	pos.settleTurn()
	return pos, nil
}

// NewPositionFromString parses a position as written by Position.String.
func NewPositionFromString(s string) (Position, error) {
	if len(s) != Squares+2 {
		return Position{}, fmt.Errorf("%w: must be %d characters long, got %d", ErrInvalidBoard, Squares+2, len(s))
	}

	var grid Grid
	for i := range Squares {
		var cell Cell
		switch s[i] {
		case '0', '.':
			cell = EMPTY
		case '1', 'B', 'b':
			cell = BLACK
		case '2', 'W', 'w':
			cell = WHITE
		default:
			return Position{}, fmt.Errorf("%w: unexpected character %q at %d", ErrInvalidBoard, s[i], i)
		}
		grid[i/Size][i%Size] = cell
	}

	var turn Cell
	switch s[Squares:] {
	case "-b":
		turn = BLACK
	case "-w":
		turn = WHITE
	default:
		return Position{}, fmt.Errorf("%w: invalid turn: %s", ErrInvalidBoard, s[Squares:])
	}

	return NewPositionFromGridGenerated(grid, turn)
}

func validateGrid(grid *Grid, turn Cell) error {
	if !turn.IsSide() {
		return fmt.Errorf("%w: %d", ErrInvalidTurn, int(turn))
	}

	for row := range Size {
		for col := range Size {
			if !grid[row][col].IsValid() {
				return fmt.Errorf("%w: %d at %d %d", ErrInvalidCell, int(grid[row][col]), row, col)
			}
		}
	}

	return nil
}

func countCells(grid *Grid) Counts {
	var counts Counts
	for row := range Size {
		for col := range Size {
			counts.add(grid[row][col], 1)
		}
	}
	return counts
}

// Grid returns a copy of the cells.
func (p Position) Grid() Grid {
	return p.grid
}

// At returns the cell at a square. Squares off the board read as EMPTY.
func (p Position) At(sq Square) Cell {
	if !sq.InBounds() {
		return EMPTY
	}
	return p.grid[sq.Row][sq.Col]
}

// Counts returns the tally of empty, black and white cells.
func (p Position) Counts() Counts {
	return p.counts
}

// Turn returns the side to move.
func (p Position) Turn() Cell {
	return p.turn
}

// Moves returns a copy of the legal moves for the side to move.
func (p Position) Moves() []Square {
	return append([]Square(nil), p.moves...)
}

// HasMoves returns whether the side to move has any legal move.
func (p Position) HasMoves() bool {
	return len(p.moves) > 0
}

// IsTerminal returns whether the game has ended.
func (p Position) IsTerminal() bool {
	return p.terminal
}

// Winner returns the winner of a finished game, DRAW on equal counts.
// The second return value is false if the game has not ended.
func (p Position) Winner() (Cell, bool) {
	if !p.terminal {
		return EMPTY, false
	}
	return p.winner, true
}

// LastMove returns the move that produced this position, or NoSquare.
func (p Position) LastMove() Square {
	return p.lastMove
}

// Equal checks if two positions are equal.
func (p Position) Equal(other Position) bool {
	if p.grid != other.grid || p.counts != other.counts || p.turn != other.turn {
		return false
	}

	if p.terminal != other.terminal || p.winner != other.winner || p.lastMove != other.lastMove {
		return false
	}

	if len(p.moves) != len(other.moves) {
		return false
	}

	for i := range p.moves {
		if p.moves[i] != other.moves[i] {
			return false
		}
	}

	return true
}

// String returns the 64 cells in row-major order followed by "-b" or "-w" for the turn.
func (p Position) String() string {
	var sb strings.Builder
	sb.Grow(Squares + 2)

	for row := range Size {
		for col := range Size {
			sb.WriteByte(byte('0' + p.grid[row][col]))
		}
	}

	if p.turn == WHITE {
		sb.WriteString("-w")
	} else {
		sb.WriteString("-b")
	}

	return sb.String()
}

// ASCIIArtLines returns the ascii art lines for the position.
func (p Position) ASCIIArtLines() []string {
	moves := make(map[Square]bool, len(p.moves))
	for _, move := range p.moves {
		moves[move] = true
	}

	lines := make([]string, Size+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range Size {
		line := fmt.Sprintf("%d ", row+1)

		for col := range Size {
			sq := Square{Row: row, Col: col}

			switch {
			case p.grid[row][col] == WHITE:
				line += "○ "
			case p.grid[row][col] == BLACK:
				line += "● "
			case moves[sq]:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[Size+1] = "+-----------------+"

	return lines
}
