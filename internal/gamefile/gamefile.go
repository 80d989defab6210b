package gamefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lk16/flippy/engine/internal/othello"
)

var ErrMalformed = errors.New("malformed position file")

// maxMoves is the largest number of legal moves a position file may list.
const maxMoves = othello.Squares - 4

type tokenReader struct {
	scanner *bufio.Scanner
	read    int
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &tokenReader{scanner: scanner}
}

func (tr *tokenReader) next(what string) (int, error) {
	if !tr.scanner.Scan() {
		if err := tr.scanner.Err(); err != nil {
			return 0, fmt.Errorf("error reading %s: %w", what, err)
		}
		return 0, fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformed, what)
	}
	tr.read++

	token := tr.scanner.Text()
	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d (%s) is not an integer: %q", ErrMalformed, tr.read, what, token)
	}
	return value, nil
}

// Read parses a position file: the side to move, 8 rows of 8 cells, the number of legal moves
// and that many "row col" pairs, all whitespace separated.
func Read(r io.Reader) (othello.Position, error) {
	tr := newTokenReader(r)

	turn, err := tr.next("side to move")
	if err != nil {
		return othello.Position{}, err
	}

	var grid othello.Grid
	for row := range othello.Size {
		for col := range othello.Size {
			cell, err := tr.next(fmt.Sprintf("cell %d %d", row, col))
			if err != nil {
				return othello.Position{}, err
			}
			grid[row][col] = othello.Cell(cell)
		}
	}

	count, err := tr.next("move count")
	if err != nil {
		return othello.Position{}, err
	}

	if count < 0 || count > maxMoves {
		return othello.Position{}, fmt.Errorf("%w: move count %d out of range", ErrMalformed, count)
	}

	moves := make([]othello.Square, count)
	for i := range moves {
		if moves[i].Row, err = tr.next(fmt.Sprintf("row of move %d", i)); err != nil {
			return othello.Position{}, err
		}
		if moves[i].Col, err = tr.next(fmt.Sprintf("column of move %d", i)); err != nil {
			return othello.Position{}, err
		}
	}

	pos, err := othello.NewPositionFromGrid(grid, othello.Cell(turn), moves)
	if err != nil {
		return othello.Position{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return pos, nil
}

// ReadFile reads a position file from disk.
func ReadFile(path string) (othello.Position, error) {
	file, err := os.Open(path)
	if err != nil {
		return othello.Position{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	pos, err := Read(file)
	if err != nil {
		return othello.Position{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return pos, nil
}

// Write writes a position in the position file format.
func Write(w io.Writer, pos othello.Position) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", int(pos.Turn()))

	grid := pos.Grid()
	for row := range othello.Size {
		for col := range othello.Size {
			if col > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%d", int(grid[row][col]))
		}
		bw.WriteByte('\n')
	}

	moves := pos.Moves()
	fmt.Fprintf(bw, "%d\n", len(moves))
	for _, move := range moves {
		fmt.Fprintf(bw, "%s\n", move)
	}

	return bw.Flush()
}

// WriteMove writes a move as "row col" followed by a newline.
func WriteMove(w io.Writer, move othello.Square) error {
	if _, err := fmt.Fprintf(w, "%s\n", move); err != nil {
		return fmt.Errorf("error writing move: %w", err)
	}
	return nil
}

// WriteMoveFile writes a move to a file, replacing its contents.
func WriteMoveFile(path string, move othello.Square) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := WriteMove(file, move); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
