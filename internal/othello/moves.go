package othello

import (
	"fmt"
)

// captures returns the length of the run of opponent discs that side would capture walking from
// sq in direction dir. It returns 0 when the run is not closed by a disc of side.
func (p Position) captures(side Cell, sq Square, dir Square) int {
	opponent := side.Opponent()
	run := 0

	for cur := sq.add(dir); cur.InBounds(); cur = cur.add(dir) {
		switch p.grid[cur.Row][cur.Col] {
		case opponent:
			run++
		case side:
			return run
		default:
			return 0
		}
	}

	return 0
}

// IsLegal checks whether side may place a disc on sq.
func (p Position) IsLegal(side Cell, sq Square) bool {
	if !side.IsSide() || !sq.InBounds() || p.grid[sq.Row][sq.Col] != EMPTY {
		return false
	}

	for _, dir := range directions {
		if p.captures(side, sq, dir) > 0 {
			return true
		}
	}

	return false
}

// LegalMoves returns all squares where side may place a disc, in row-major order.
func (p Position) LegalMoves(side Cell) []Square {
	moves := make([]Square, 0, 16)

	for row := range Size {
		for col := range Size {
			sq := Square{Row: row, Col: col}
			if p.IsLegal(side, sq) {
				moves = append(moves, sq)
			}
		}
	}

	return moves
}

// IsValidMove checks if sq is in the legal move list of the side to move.
func (p Position) IsValidMove(sq Square) bool {
	for _, move := range p.moves {
		if move == sq {
			return true
		}
	}
	return false
}

// CheckMove returns nil if sq can be played, ErrOutOfBounds for squares off the board and an
// error wrapping ErrIllegalMove otherwise.
func (p Position) CheckMove(sq Square) error {
	if !sq.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, sq)
	}

	if p.terminal {
		return fmt.Errorf("%w: game has ended", ErrIllegalMove)
	}

	if !p.IsValidMove(sq) {
		return fmt.Errorf("%w: %s for %s", ErrIllegalMove, sq.Field(), p.turn)
	}

	return nil
}

// DoMove places a disc for the side to move and returns the resulting position.
//
// A square off the board is an error. A square that is on the board but not a legal move
// forfeits the game: the returned position is terminal and won by the opponent of the mover.
func (p Position) DoMove(sq Square) (Position, error) {
	if !sq.InBounds() {
		return Position{}, fmt.Errorf("%w: %s", ErrOutOfBounds, sq)
	}

	child := p
	child.moves = nil
	child.lastMove = sq

	if p.terminal || !p.IsValidMove(sq) {
		child.terminal = true
		child.winner = p.turn.Opponent()
		return child, nil
	}

	mover := p.turn
	child.grid[sq.Row][sq.Col] = mover
	flipped := 0

	for _, dir := range directions {
		run := p.captures(mover, sq, dir)
		cur := sq
		for range run {
			cur = cur.add(dir)
			child.grid[cur.Row][cur.Col] = mover
		}
		flipped += run
	}

	child.counts.add(EMPTY, -1)
	child.counts.add(mover, 1+flipped)
	child.counts.add(mover.Opponent(), -flipped)

	child.turn = mover.Opponent()
	child.settleTurn()

	return child, nil
}

// settleTurn computes the moves for the side to move, passing the turn back if it has none and
// ending the game if neither side can move.
func (p *Position) settleTurn() {
	p.moves = p.LegalMoves(p.turn)
	if len(p.moves) > 0 {
		return
	}

	p.turn = p.turn.Opponent()
	p.moves = p.LegalMoves(p.turn)
	if len(p.moves) > 0 {
		return
	}

	p.terminal = true
	switch {
	case p.counts.Black > p.counts.White:
		p.winner = BLACK
	case p.counts.White > p.counts.Black:
		p.winner = WHITE
	default:
		p.winner = DRAW
	}
}

// Children returns the positions after each legal move, in move list order.
func (p Position) Children() []Position {
	children := make([]Position, 0, len(p.moves))
	for _, move := range p.moves {
		// Moves in the list are always on the board.
		child, _ := p.DoMove(move)
		children = append(children, child)
	}
	return children
}
