package evaluate

import (
	"github.com/lk16/flippy/engine/internal/othello"
)

const (
	// maxRatio is the largest absolute value ratio can return.
	maxRatio = 100

	// maxStability is the largest absolute value of the stability feature: at most 7 per edge
	// run, two runs per corner, four corners.
	maxStability = 7 * 2 * 4

	// fullEdgePenalty is subtracted from an edge run that covers the whole edge, since the far
	// corner is counted again from its own side.
	fullEdgePenalty = 4
)

type corner struct {
	square     othello.Square
	neighbours [3]othello.Square
	edges      [2]othello.Square
}

var corners = [4]corner{
	{
		square:     othello.Square{Row: 0, Col: 0},
		neighbours: [3]othello.Square{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: 0}},
		edges:      [2]othello.Square{{Row: 1, Col: 0}, {Row: 0, Col: 1}},
	},
	{
		square:     othello.Square{Row: 0, Col: 7},
		neighbours: [3]othello.Square{{Row: 0, Col: 6}, {Row: 1, Col: 6}, {Row: 1, Col: 7}},
		edges:      [2]othello.Square{{Row: 1, Col: 0}, {Row: 0, Col: -1}},
	},
	{
		square:     othello.Square{Row: 7, Col: 0},
		neighbours: [3]othello.Square{{Row: 7, Col: 1}, {Row: 6, Col: 1}, {Row: 6, Col: 0}},
		edges:      [2]othello.Square{{Row: -1, Col: 0}, {Row: 0, Col: 1}},
	},
	{
		square:     othello.Square{Row: 7, Col: 7},
		neighbours: [3]othello.Square{{Row: 6, Col: 7}, {Row: 6, Col: 6}, {Row: 7, Col: 6}},
		edges:      [2]othello.Square{{Row: -1, Col: 0}, {Row: 0, Col: -1}},
	},
}

// Evaluate scores pos from the perspective of self. Higher is better for self.
func (w Weights) Evaluate(pos othello.Position, self othello.Cell) float64 {
	opponent := self.Opponent()
	grid := pos.Grid()

	var placement float64
	var selfDiscs, oppDiscs, selfFrontier, oppFrontier int

	for row := range othello.Size {
		for col := range othello.Size {
			switch grid[row][col] {
			case self:
				placement += w.Table[row][col]
				selfDiscs++
				if isFrontier(&grid, row, col) {
					selfFrontier++
				}
			case opponent:
				placement -= w.Table[row][col]
				oppDiscs++
				if isFrontier(&grid, row, col) {
					oppFrontier++
				}
			}
		}
	}

	score := w.Placement * placement
	score += w.Discs * ratio(selfDiscs, oppDiscs)
	score += w.Frontier * ratio(selfFrontier, oppFrontier)

	if w.Mobility != 0 {
		selfMoves := len(pos.LegalMoves(self))
		oppMoves := len(pos.LegalMoves(opponent))
		score += w.Mobility * ratio(selfMoves, oppMoves)
	}

	var cornerDiff, closenessDiff, stability int
	lostCorner := false

	for _, c := range corners {
		owner := grid[c.square.Row][c.square.Col]

		switch owner {
		case self:
			cornerDiff++
		case opponent:
			cornerDiff--
			lostCorner = true
		default:
			for _, sq := range c.neighbours {
				switch grid[sq.Row][sq.Col] {
				case self:
					closenessDiff++
				case opponent:
					closenessDiff--
				}
			}
			continue
		}

		run := edgeRun(&grid, c.square, c.edges[0], owner) + edgeRun(&grid, c.square, c.edges[1], owner)
		if owner == self {
			stability += run
		} else {
			stability -= run
		}
	}

	score += w.Corners * float64(cornerDiff)
	score += w.CornerCloseness * float64(closenessDiff)
	score += w.Stability * float64(stability)

	if lostCorner {
		score -= w.CornerLoss
	}

	return score
}

// ratio returns the share of the larger count as a signed percentage: positive when a leads,
// negative when b leads and 0 on a tie.
func ratio(a, b int) float64 {
	switch {
	case a > b:
		return float64(maxRatio*a) / float64(a+b)
	case a < b:
		return -float64(maxRatio*b) / float64(a+b)
	default:
		return 0
	}
}

// isFrontier returns whether the disc on row, col touches an empty square.
func isFrontier(grid *othello.Grid, row, col int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if (dr == 0 && dc == 0) || r < 0 || r >= othello.Size || c < 0 || c >= othello.Size {
				continue
			}
			if grid[r][c] == othello.EMPTY {
				return true
			}
		}
	}
	return false
}

// edgeRun counts the discs of owner along an edge starting at the corner itself.
func edgeRun(grid *othello.Grid, from, dir othello.Square, owner othello.Cell) int {
	run := 0
	for i := range othello.Size {
		if grid[from.Row+dir.Row*i][from.Col+dir.Col*i] != owner {
			return run
		}
		run++
	}
	return run - fullEdgePenalty
}
