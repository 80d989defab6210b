package othello //nolint:testpackage

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomGamePositions plays random games from the start and returns every position seen.
func randomGamePositions(t *testing.T, games int, seed int64) []Position {
	t.Helper()

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec
	positions := make([]Position, 0, games*60)

	for range games {
		pos := NewPositionStart()
		for !pos.IsTerminal() {
			positions = append(positions, pos)
			moves := pos.Moves()
			require.NotEmpty(t, moves)

			var err error
			pos, err = pos.DoMove(moves[rng.Intn(len(moves))])
			require.NoError(t, err)
		}
		positions = append(positions, pos)
	}

	return positions
}

func gridFromRows(t *testing.T, rows ...string) Grid {
	t.Helper()

	require.Len(t, rows, Size)

	var grid Grid
	for row, line := range rows {
		require.Len(t, line, Size)
		for col, c := range line {
			switch c {
			case 'B':
				grid[row][col] = BLACK
			case 'W':
				grid[row][col] = WHITE
			case '.':
				grid[row][col] = EMPTY
			default:
				t.Fatalf("unexpected character %q", c)
			}
		}
	}
	return grid
}

func TestNewPositionStart(t *testing.T) {
	pos := NewPositionStart()

	require.Equal(t, BLACK, pos.Turn())
	require.Equal(t, Counts{Empty: 60, Black: 2, White: 2}, pos.Counts())
	require.Equal(t, []Square{{2, 3}, {3, 2}, {4, 5}, {5, 4}}, pos.Moves())
	require.False(t, pos.IsTerminal())
	require.Equal(t, NoSquare, pos.LastMove())

	_, ok := pos.Winner()
	require.False(t, ok)

	require.Equal(t, WHITE, pos.At(Square{3, 3}))
	require.Equal(t, BLACK, pos.At(Square{3, 4}))
	require.Equal(t, BLACK, pos.At(Square{4, 3}))
	require.Equal(t, WHITE, pos.At(Square{4, 4}))
}

func TestNewPositionFromGrid(t *testing.T) {
	start := NewPositionStart()

	tests := []struct {
		name    string
		grid    Grid
		turn    Cell
		moves   []Square
		wantErr error
	}{
		{
			name:  "valid",
			grid:  start.Grid(),
			turn:  BLACK,
			moves: start.Moves(),
		},
		{
			name:  "moves are trusted",
			grid:  start.Grid(),
			turn:  WHITE,
			moves: []Square{{0, 0}},
		},
		{
			name:    "invalid turn",
			grid:    start.Grid(),
			turn:    EMPTY,
			wantErr: ErrInvalidTurn,
		},
		{
			name:    "invalid cell",
			grid:    Grid{{3}},
			turn:    BLACK,
			wantErr: ErrInvalidCell,
		},
		{
			name:    "move out of bounds",
			grid:    start.Grid(),
			turn:    BLACK,
			moves:   []Square{{8, 0}},
			wantErr: ErrOutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := NewPositionFromGrid(tt.grid, tt.turn, tt.moves)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.turn, pos.Turn())
			require.Equal(t, tt.moves, pos.Moves())
			require.False(t, pos.IsTerminal())
			require.Equal(t, NoSquare, pos.LastMove())
		})
	}
}

func TestNewPositionFromGridCounts(t *testing.T) {
	grid := gridFromRows(t,
		"BBBBBBBB",
		"WWWWWWWW",
		"B.......",
		"........",
		"........",
		"........",
		"........",
		".......W",
	)

	pos, err := NewPositionFromGrid(grid, WHITE, nil)
	require.NoError(t, err)
	require.Equal(t, Counts{Empty: 46, Black: 9, White: 9}, pos.Counts())
}

func TestPositionMovesIsCopy(t *testing.T) {
	pos := NewPositionStart()

	moves := pos.Moves()
	moves[0] = Square{7, 7}

	require.Equal(t, Square{2, 3}, pos.Moves()[0])
}

func TestPositionString(t *testing.T) {
	pos := NewPositionStart()

	s := pos.String()
	require.Len(t, s, Squares+2)
	require.True(t, strings.HasSuffix(s, "-b"))

	parsed, err := NewPositionFromString(s)
	require.NoError(t, err)
	require.True(t, pos.Equal(parsed))
}

func TestNewPositionFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"start digits", NewPositionStart().String(), false},
		{"letters", strings.Repeat(".", 27) + "WB......BW" + strings.Repeat(".", 27) + "-w", false},
		{"too short", "0-b", true},
		{"bad character", strings.Repeat("x", Squares) + "-b", true},
		{"bad turn", strings.Repeat("0", Squares) + "-x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPositionFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidBoard)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPositionCountsInvariant(t *testing.T) {
	for _, pos := range randomGamePositions(t, 20, 1) {
		counts := pos.Counts()
		require.Equal(t, Squares, counts.Empty+counts.Black+counts.White)
		require.Equal(t, countCells(&pos.grid), counts)
	}
}

func TestPositionEqual(t *testing.T) {
	a := NewPositionStart()
	b := NewPositionStart()
	require.True(t, a.Equal(b))

	c, err := a.DoMove(Square{2, 3})
	require.NoError(t, err)
	require.False(t, a.Equal(c))

	d, err := b.DoMove(Square{2, 3})
	require.NoError(t, err)
	require.True(t, c.Equal(d))
}

func TestPositionASCIIArtLines(t *testing.T) {
	lines := NewPositionStart().ASCIIArtLines()

	require.Len(t, lines, 10)
	require.Equal(t, "+-a-b-c-d-e-f-g-h-+", lines[0])
	require.Equal(t, "3       ·         |", lines[3])
	require.Equal(t, "4     · ○ ●       |", lines[4])
}

func TestCellOpponent(t *testing.T) {
	require.Equal(t, WHITE, BLACK.Opponent())
	require.Equal(t, BLACK, WHITE.Opponent())
	require.Equal(t, EMPTY, EMPTY.Opponent())
}

func TestSquareField(t *testing.T) {
	require.Equal(t, "a1", Square{0, 0}.Field())
	require.Equal(t, "d3", Square{2, 3}.Field())
	require.Equal(t, "h8", Square{7, 7}.Field())
	require.Equal(t, "--", NoSquare.Field())

	sq, err := FieldToSquare("D3")
	require.NoError(t, err)
	require.Equal(t, Square{2, 3}, sq)

	_, err = FieldToSquare("i9")
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = FieldToSquare("a10")
	require.Error(t, err)
}
