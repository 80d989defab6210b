package evaluate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lk16/flippy/engine/internal/othello"
)

var ErrUnknownPreset = errors.New("unknown evaluation preset")

// Weights are the coefficients of the evaluation features. A zero coefficient disables a feature.
type Weights struct {
	// Table holds the value of owning each square.
	Table [othello.Size][othello.Size]float64

	// Placement scales the signed sum of Table over all discs.
	Placement float64

	// Discs scales the normalized disc count difference.
	Discs float64

	// Corners is added per corner held by self and subtracted per corner held by the opponent.
	Corners float64

	// CornerCloseness is added per disc of self next to an empty corner and subtracted per disc
	// of the opponent there. It is normally negative.
	CornerCloseness float64

	// Mobility scales the normalized legal move count difference.
	Mobility float64

	// Frontier scales the normalized frontier disc count difference. It is normally negative.
	Frontier float64

	// Stability scales the length of edge runs anchored in corners.
	Stability float64

	// CornerLoss is subtracted whenever the opponent holds any corner.
	CornerLoss float64
}

var classicTable = [othello.Size][othello.Size]float64{
	{20, -3, 11, 8, 8, 11, -3, 20},
	{-3, -7, -4, 1, 1, -4, -7, -3},
	{11, -4, 2, 2, 2, 2, -4, 11},
	{8, 1, 2, -3, -3, 2, 1, 8},
	{8, 1, 2, -3, -3, 2, 1, 8},
	{11, -4, 2, 2, 2, 2, -4, 11},
	{-3, -7, -4, 1, 1, -4, -7, -3},
	{20, -3, 11, 8, 8, 11, -3, 20},
}

var stableTable = [othello.Size][othello.Size]float64{
	{65, -5, 11, 8, 8, 11, -5, 65},
	{-5, -30, 4, 1, 1, 4, -30, -5},
	{11, 4, 5, 2, 2, 5, 4, 11},
	{8, 1, 3, 1, 1, 3, 1, 8},
	{8, 1, 3, 1, 1, 3, 1, 8},
	{11, 4, 5, 2, 2, 5, 4, 11},
	{-5, -30, 4, 1, 1, 4, -30, -5},
	{65, -5, 11, 8, 8, 11, -5, 65},
}

// Classic balances disc ratio, square values, corners, mobility and frontier discs.
var Classic = Weights{
	Table:           classicTable,
	Placement:       20,
	Discs:           2,
	Corners:         500,
	CornerCloseness: -150,
	Mobility:        15,
	Frontier:        -5,
	CornerLoss:      250,
}

// Stable relies on a steep square table and corner-anchored edge runs.
var Stable = Weights{
	Table:           stableTable,
	Placement:       1,
	CornerCloseness: -10,
	Mobility:        10,
	Stability:       10,
	CornerLoss:      100,
}

var presets = map[string]Weights{
	"classic": Classic,
	"stable":  Stable,
}

// Preset returns the weights registered under name.
func Preset(name string) (Weights, error) {
	weights, ok := presets[name]
	if !ok {
		return Weights{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return weights, nil
}

// Presets returns the sorted names of all presets.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bound returns an upper bound on the absolute value Evaluate can return with these weights.
func (w Weights) Bound() float64 {
	tableSum := 0.0
	for row := range othello.Size {
		for col := range othello.Size {
			tableSum += math.Abs(w.Table[row][col])
		}
	}

	bound := math.Abs(w.Placement) * tableSum
	bound += math.Abs(w.Discs) * maxRatio
	bound += math.Abs(w.Corners) * 4
	bound += math.Abs(w.CornerCloseness) * 12
	bound += math.Abs(w.Mobility) * maxRatio
	bound += math.Abs(w.Frontier) * maxRatio
	bound += math.Abs(w.Stability) * maxStability
	bound += math.Abs(w.CornerLoss)

	return bound
}
