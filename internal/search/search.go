package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/lk16/flippy/engine/internal/othello"
)

// WinScore is the score of a finished game won by self, -WinScore of one lost by self.
// It is far above the largest evaluation any preset can produce (see evaluate.Weights.Bound)
// and far below 2^53, so it stays exact in float64 and totally ordered with evaluations. The
// search only compares scores, so no arithmetic on it can overflow.
const WinScore = 1e9

var (
	ErrInvalidDepth = errors.New("search depth must be at least 1")
	ErrNoMoves      = errors.New("position has no moves")
	ErrWrongTurn    = errors.New("self is not the side to move")
)

// Evaluator scores a position from the perspective of self.
type Evaluator interface {
	Evaluate(pos othello.Position, self othello.Cell) float64
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(pos othello.Position, self othello.Cell) float64

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(pos othello.Position, self othello.Cell) float64 {
	return f(pos, self)
}

// Result is the outcome of a search.
type Result struct {
	Move    othello.Square
	Score   float64
	Nodes   uint64
	Depth   int
	Elapsed time.Duration
}

// Searcher chooses moves with a fixed depth minimax search.
type Searcher struct {
	evaluator Evaluator
	self      othello.Cell
	startTime time.Time
	nodes     uint64
}

// NewSearcher creates a new Searcher.
func NewSearcher(evaluator Evaluator) *Searcher {
	return &Searcher{
		evaluator: evaluator,
	}
}

// ChooseMove returns the move for self that maximizes the alpha-beta value of a search of depth
// plies, the root move included. Ties go to the move listed first.
func (s *Searcher) ChooseMove(pos othello.Position, self othello.Cell, depth int) (Result, error) {
	return s.choose(pos, self, depth, s.alphaBeta)
}

// ChooseMoveExhaustive works like ChooseMove, but searches the whole tree without pruning.
func (s *Searcher) ChooseMoveExhaustive(pos othello.Position, self othello.Cell, depth int) (Result, error) {
	return s.choose(pos, self, depth, func(child othello.Position, depth int, _, _ float64) float64 {
		return s.minimax(child, depth)
	})
}

type nodeFunc func(pos othello.Position, depth int, alpha, beta float64) float64

func (s *Searcher) choose(pos othello.Position, self othello.Cell, depth int, search nodeFunc) (Result, error) {
	if depth < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}

	if pos.IsTerminal() || !pos.HasMoves() {
		return Result{}, ErrNoMoves
	}

	if self != pos.Turn() {
		return Result{}, fmt.Errorf("%w: self is %s, turn is %s", ErrWrongTurn, self, pos.Turn())
	}

	s.self = self
	s.startTime = time.Now()
	s.nodes = 0

	best := Result{Move: othello.NoSquare, Score: math.Inf(-1), Depth: depth}

	for _, move := range pos.Moves() {
		child, err := pos.DoMove(move)
		if err != nil {
			return Result{}, fmt.Errorf("error playing root move: %w", err)
		}
		s.nodes++

		score := search(child, depth-1, best.Score, math.Inf(1))

		if score > best.Score {
			best.Score = score
			best.Move = move
		}
	}

	best.Nodes = s.nodes
	best.Elapsed = time.Since(s.startTime)
	s.logStats(best)

	return best, nil
}

// leaf returns the score of a position where the search stops, and whether it stops there.
func (s *Searcher) leaf(pos othello.Position, depth int) (float64, bool) {
	if winner, ok := pos.Winner(); ok {
		switch winner {
		case s.self:
			return WinScore, true
		case s.self.Opponent():
			return -WinScore, true
		default:
			return s.evaluator.Evaluate(pos, s.self), true
		}
	}

	if depth == 0 {
		return s.evaluator.Evaluate(pos, s.self), true
	}

	return 0, false
}

// alphaBeta returns the minimax value of pos for self within the window alpha, beta. Values
// outside the window are bounds, not exact values.
func (s *Searcher) alphaBeta(pos othello.Position, depth int, alpha, beta float64) float64 {
	if score, ok := s.leaf(pos, depth); ok {
		return score
	}

	maximizing := pos.Turn() == s.self

	var best float64
	if maximizing {
		best = math.Inf(-1)
	} else {
		best = math.Inf(1)
	}

	for _, move := range pos.Moves() {
		child, _ := pos.DoMove(move)
		s.nodes++

		score := s.alphaBeta(child, depth-1, alpha, beta)

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}

		if alpha >= beta {
			break
		}
	}

	return best
}

// minimax returns the exact minimax value of pos for self.
func (s *Searcher) minimax(pos othello.Position, depth int) float64 {
	if score, ok := s.leaf(pos, depth); ok {
		return score
	}

	maximizing := pos.Turn() == s.self

	var best float64
	if maximizing {
		best = math.Inf(-1)
	} else {
		best = math.Inf(1)
	}

	for _, child := range pos.Children() {
		s.nodes++

		score := s.minimax(child, depth-1)

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

func (s *Searcher) logStats(result Result) {
	elapsedSeconds := result.Elapsed.Seconds()

	nodesPerSecond := int64(0)
	if elapsedSeconds > 0.000001 {
		nodesPerSecond = int64(float64(result.Nodes) / elapsedSeconds)
	}

	slog.Debug("Search finished",
		"move", result.Move.Field(),
		"score", result.Score,
		"depth", result.Depth,
		"nodes", result.Nodes,
		"elapsed", result.Elapsed,
		"nodes_per_second", nodesPerSecond,
	)
}
