package othello //nolint:testpackage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// naiveIsLegal is an independent implementation of the capture rule used to cross-check IsLegal.
func naiveIsLegal(grid Grid, side Cell, row, col int) bool {
	if grid[row][col] != EMPTY {
		return false
	}

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}

			seen := 0
			r, c := row+dr, col+dc
			for r >= 0 && r < 8 && c >= 0 && c < 8 && grid[r][c] == side.Opponent() {
				seen++
				r, c = r+dr, c+dc
			}

			if seen > 0 && r >= 0 && r < 8 && c >= 0 && c < 8 && grid[r][c] == side {
				return true
			}
		}
	}

	return false
}

func TestLegalMovesMatchBruteForce(t *testing.T) {
	for _, pos := range randomGamePositions(t, 30, 2) {
		for _, side := range []Cell{BLACK, WHITE} {
			legal := pos.LegalMoves(side)
			inList := make(map[Square]bool, len(legal))
			for _, sq := range legal {
				inList[sq] = true
			}

			for row := range Size {
				for col := range Size {
					sq := Square{Row: row, Col: col}
					want := naiveIsLegal(pos.grid, side, row, col)
					require.Equal(t, want, pos.IsLegal(side, sq), "position %s side %s square %s", pos, side, sq)
					require.Equal(t, want, inList[sq], "position %s side %s square %s", pos, side, sq)
				}
			}
		}
	}
}

func TestLegalMovesRowMajor(t *testing.T) {
	for _, pos := range randomGamePositions(t, 5, 3) {
		moves := pos.LegalMoves(pos.Turn())
		for i := 1; i < len(moves); i++ {
			prev := moves[i-1].Row*Size + moves[i-1].Col
			cur := moves[i].Row*Size + moves[i].Col
			require.Less(t, prev, cur)
		}
	}
}

func TestIsLegalEdgeCases(t *testing.T) {
	pos := NewPositionStart()

	require.False(t, pos.IsLegal(BLACK, Square{3, 3}), "occupied")
	require.False(t, pos.IsLegal(BLACK, Square{0, 0}), "no capture")
	require.False(t, pos.IsLegal(BLACK, Square{-1, 0}), "off board")
	require.False(t, pos.IsLegal(EMPTY, Square{2, 3}), "not a side")
	require.True(t, pos.IsLegal(WHITE, Square{2, 4}))
}

func TestDoMoveFlipsAndCounts(t *testing.T) {
	for _, pos := range randomGamePositions(t, 20, 4) {
		if pos.IsTerminal() {
			continue
		}

		mover := pos.Turn()
		before := pos.Counts()

		for _, move := range pos.Moves() {
			child, err := pos.DoMove(move)
			require.NoError(t, err)

			after := child.Counts()
			flipped := before.Of(mover.Opponent()) - after.Of(mover.Opponent())

			require.Positive(t, flipped)
			require.Equal(t, before.Of(mover)+1+flipped, after.Of(mover))
			require.Equal(t, before.Empty-1, after.Empty)
			require.Equal(t, mover, child.At(move))
			require.Equal(t, move, child.LastMove())
		}
	}
}

func TestDoMoveDoesNotMutate(t *testing.T) {
	pos := NewPositionStart()
	snapshot := pos.String()
	moves := pos.Moves()

	_, err := pos.DoMove(Square{2, 3})
	require.NoError(t, err)

	require.Equal(t, snapshot, pos.String())
	require.Equal(t, moves, pos.Moves())
	require.Equal(t, NoSquare, pos.LastMove())
}

func TestDoMoveDeterministic(t *testing.T) {
	for _, pos := range randomGamePositions(t, 5, 5) {
		if pos.IsTerminal() {
			continue
		}

		copied := pos
		for _, move := range pos.Moves() {
			a, err := pos.DoMove(move)
			require.NoError(t, err)
			b, err := copied.DoMove(move)
			require.NoError(t, err)
			require.True(t, a.Equal(b))
		}
	}
}

func TestDoMoveFlipsAllDirections(t *testing.T) {
	grid := gridFromRows(t,
		"B.B.B...",
		".WWW....",
		"BW.WB...",
		".WWW....",
		"B.B.B...",
		"........",
		"........",
		"........",
	)

	pos, err := NewPositionFromGridGenerated(grid, BLACK)
	require.NoError(t, err)

	child, err := pos.DoMove(Square{2, 2})
	require.NoError(t, err)

	want := gridFromRows(t,
		"B.B.B...",
		".BBB....",
		"BBBBB...",
		".BBB....",
		"B.B.B...",
		"........",
		"........",
		"........",
	)
	require.Equal(t, want, child.Grid())
	require.Equal(t, Counts{Empty: 47, Black: 17, White: 0}, child.Counts())
}

func TestDoMoveOutOfBounds(t *testing.T) {
	pos := NewPositionStart()

	for _, sq := range []Square{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		_, err := pos.DoMove(sq)
		require.ErrorIs(t, err, ErrOutOfBounds)
		require.ErrorIs(t, pos.CheckMove(sq), ErrOutOfBounds)
	}
}

func TestDoMoveIllegalForfeits(t *testing.T) {
	pos := NewPositionStart()

	child, err := pos.DoMove(Square{0, 0})
	require.NoError(t, err)

	require.True(t, child.IsTerminal())
	winner, ok := child.Winner()
	require.True(t, ok)
	require.Equal(t, WHITE, winner)
	require.Equal(t, pos.Grid(), child.Grid())
	require.Empty(t, child.Moves())

	require.ErrorIs(t, pos.CheckMove(Square{0, 0}), ErrIllegalMove)
	require.NoError(t, pos.CheckMove(Square{2, 3}))
}

func TestDoMoveUsesMoveList(t *testing.T) {
	start := NewPositionStart()

	// (2,3) is a legal square for black but not in the supplied list.
	pos, err := NewPositionFromGrid(start.Grid(), BLACK, []Square{{3, 2}})
	require.NoError(t, err)

	child, err := pos.DoMove(Square{2, 3})
	require.NoError(t, err)
	require.True(t, child.IsTerminal())

	child, err = pos.DoMove(Square{3, 2})
	require.NoError(t, err)
	require.False(t, child.IsTerminal())
	require.Equal(t, WHITE, child.Turn())
}

func TestDoMoveForcedPass(t *testing.T) {
	grid := gridFromRows(t,
		"WB......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"WB......",
	)

	pos, err := NewPositionFromGridGenerated(grid, WHITE)
	require.NoError(t, err)
	require.Equal(t, []Square{{0, 2}, {7, 2}}, pos.Moves())

	child, err := pos.DoMove(Square{0, 2})
	require.NoError(t, err)

	// Black has no moves, so white moves again.
	require.False(t, child.IsTerminal())
	require.Equal(t, WHITE, child.Turn())
	require.Equal(t, []Square{{7, 2}}, child.Moves())
}

func TestDoMoveGameEnd(t *testing.T) {
	tests := []struct {
		name       string
		rows       []string
		move       Square
		wantWinner Cell
		wantCounts Counts
	}{
		{
			name: "board full",
			rows: []string{
				".WBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"BBBBBBBB",
				"WWWWWWWW",
				"WWWWWWWW",
				"WWWWWWWW",
				"WWWWWWWW",
			},
			move:       Square{0, 0},
			wantWinner: DRAW,
			wantCounts: Counts{Empty: 0, Black: 32, White: 32},
		},
		{
			name: "opponent wiped out",
			rows: []string{
				"BW......",
				"........",
				"........",
				"........",
				"........",
				"........",
				"........",
				"........",
			},
			move:       Square{0, 2},
			wantWinner: BLACK,
			wantCounts: Counts{Empty: 61, Black: 3, White: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := NewPositionFromGridGenerated(gridFromRows(t, tt.rows...), BLACK)
			require.NoError(t, err)

			child, err := pos.DoMove(tt.move)
			require.NoError(t, err)

			require.True(t, child.IsTerminal())
			require.Empty(t, child.Moves())
			require.Equal(t, tt.wantCounts, child.Counts())

			winner, ok := child.Winner()
			require.True(t, ok)
			require.Equal(t, tt.wantWinner, winner)
		})
	}
}

func TestGameEndWinnerByCount(t *testing.T) {
	for _, pos := range randomGamePositions(t, 20, 6) {
		if !pos.IsTerminal() {
			continue
		}

		require.Empty(t, pos.LegalMoves(BLACK))
		require.Empty(t, pos.LegalMoves(WHITE))

		winner, ok := pos.Winner()
		require.True(t, ok)

		counts := pos.Counts()
		switch {
		case counts.Black > counts.White:
			require.Equal(t, BLACK, winner)
		case counts.White > counts.Black:
			require.Equal(t, WHITE, winner)
		default:
			require.Equal(t, DRAW, winner)
		}
	}
}

func TestNewPositionFromGridGeneratedTerminal(t *testing.T) {
	grid := gridFromRows(t,
		"WWWWWWWW",
		"WWWWWWWW",
		"WWWWWWWW",
		"WWWWWWWW",
		"BBBBBBBB",
		"BBBBBBBB",
		"BBBBBBBB",
		"BBBBBBBB",
	)

	pos, err := NewPositionFromGridGenerated(grid, BLACK)
	require.NoError(t, err)
	require.True(t, pos.IsTerminal())

	winner, ok := pos.Winner()
	require.True(t, ok)
	require.Equal(t, DRAW, winner)
}

func TestChildren(t *testing.T) {
	pos := NewPositionStart()
	children := pos.Children()

	require.Len(t, children, 4)
	for i, child := range children {
		require.Equal(t, pos.Moves()[i], child.LastMove())
		require.Equal(t, WHITE, child.Turn())
		require.Equal(t, Counts{Empty: 59, Black: 4, White: 1}, child.Counts())
	}
}

func TestChildrenFollowMoveList(t *testing.T) {
	start := NewPositionStart()
	pos, err := NewPositionFromGrid(start.Grid(), BLACK, []Square{{5, 4}, {2, 3}})
	require.NoError(t, err)

	children := pos.Children()
	require.Len(t, children, 2)
	require.Equal(t, Square{5, 4}, children[0].LastMove())
	require.Equal(t, Square{2, 3}, children[1].LastMove())
}
