package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/evaluate"
	"github.com/lk16/flippy/engine/internal/othello"
)

// ErrMustPass is returned when the requested side to move has no legal moves while its
// opponent does.
var ErrMustPass = errors.New("side to move has no legal moves and must pass")

// positionForTurn builds a position with generated moves and rejects it when turn would have
// to pass. Finished games are returned as they are.
func positionForTurn(board othello.Grid, turn othello.Cell) (othello.Position, error) {
	pos, err := othello.NewPositionFromGridGenerated(board, turn)
	if err != nil {
		return othello.Position{}, err
	}

	if !pos.IsTerminal() && pos.Turn() != turn {
		return othello.Position{}, fmt.Errorf("%w: %s", ErrMustPass, turn)
	}

	return pos, nil
}

// MoveRequest asks for the best move in a position.
type MoveRequest struct {
	Board othello.Grid `json:"board"`
	Turn  othello.Cell `json:"turn"`

	// Moves are the legal moves for Turn. When left out, they are generated.
	Moves []othello.Square `json:"moves,omitempty"`

	// Depth and Preset fall back to the server configuration when left out.
	Depth  int    `json:"depth,omitempty"`
	Preset string `json:"preset,omitempty"`
}

// Validate checks the search settings of the request.
func (r *MoveRequest) Validate() error {
	if r.Depth < 0 || r.Depth > config.MaxSearchDepth {
		return fmt.Errorf("depth must be between 1 and %d, or 0 for the default", config.MaxSearchDepth)
	}

	if r.Preset != "" {
		if _, err := evaluate.Preset(r.Preset); err != nil {
			return err
		}
	}

	return nil
}

// Position builds the position of the request.
func (r *MoveRequest) Position() (othello.Position, error) {
	if r.Moves == nil {
		return positionForTurn(r.Board, r.Turn)
	}
	return othello.NewPositionFromGrid(r.Board, r.Turn, r.Moves)
}

// MoveResponse is the outcome of a search.
type MoveResponse struct {
	ID     uuid.UUID      `json:"id"`
	Move   othello.Square `json:"move"`
	Field  string         `json:"field"`
	Score  float64        `json:"score"`
	Nodes  uint64         `json:"nodes"`
	Depth  int            `json:"depth"`
	Preset string         `json:"preset"`
	Cached bool           `json:"cached"`
}

// PlayRequest asks to apply a move to a position.
type PlayRequest struct {
	Board othello.Grid   `json:"board"`
	Turn  othello.Cell   `json:"turn"`
	Move  othello.Square `json:"move"`
}

// Position builds the position the move is played in.
func (r *PlayRequest) Position() (othello.Position, error) {
	return positionForTurn(r.Board, r.Turn)
}

// PositionResponse describes a position.
type PositionResponse struct {
	Position string           `json:"position"`
	Board    othello.Grid     `json:"board"`
	Turn     othello.Cell     `json:"turn"`
	Moves    []othello.Square `json:"moves"`
	Counts   othello.Counts   `json:"counts"`
	Terminal bool             `json:"terminal"`
	Winner   *othello.Cell    `json:"winner,omitempty"`
}

// NewPositionResponse creates a PositionResponse from a position.
func NewPositionResponse(pos othello.Position) PositionResponse {
	response := PositionResponse{
		Position: pos.String(),
		Board:    pos.Grid(),
		Turn:     pos.Turn(),
		Moves:    pos.Moves(),
		Counts:   pos.Counts(),
		Terminal: pos.IsTerminal(),
	}

	if winner, ok := pos.Winner(); ok {
		response.Winner = &winner
	}

	return response
}

// SearchRecord is a search as stored in the searches table.
type SearchRecord struct {
	ID        uuid.UUID      `json:"id"         db:"id"`
	Position  string         `json:"position"   db:"position"`
	Moves     pq.StringArray `json:"moves"      db:"moves"`
	Depth     int            `json:"depth"      db:"depth"`
	Preset    string         `json:"preset"     db:"preset"`
	MoveRow   int            `json:"move_row"   db:"move_row"`
	MoveCol   int            `json:"move_col"   db:"move_col"`
	Score     float64        `json:"score"      db:"score"`
	Nodes     int64          `json:"nodes"      db:"nodes"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// NewSearchRecord creates a SearchRecord for a finished search.
func NewSearchRecord(pos othello.Position, response MoveResponse) SearchRecord {
	return SearchRecord{
		ID:        response.ID,
		Position:  pos.String(),
		Moves:     MoveFields(pos.Moves()),
		Depth:     response.Depth,
		Preset:    response.Preset,
		MoveRow:   response.Move.Row,
		MoveCol:   response.Move.Col,
		Score:     response.Score,
		Nodes:     int64(response.Nodes), //nolint:gosec
		CreatedAt: time.Now().UTC(),
	}
}

// Move returns the chosen move of the record.
func (r SearchRecord) Move() othello.Square {
	return othello.Square{Row: r.MoveRow, Col: r.MoveCol}
}

// MoveFields converts moves to field notation.
func MoveFields(moves []othello.Square) []string {
	fields := make([]string, len(moves))
	for i, move := range moves {
		fields[i] = move.Field()
	}
	return fields
}

// SearchKey identifies a search for caching. Equal keys produce equal results.
func SearchKey(pos othello.Position, depth int, preset string) string {
	return fmt.Sprintf("%s:%d:%s:%s", preset, depth, pos.String(), strings.Join(MoveFields(pos.Moves()), ","))
}

// ParseSearchID parses the id of a stored search.
func ParseSearchID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("invalid search id")
	}
	return id, nil
}
