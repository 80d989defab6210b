package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lk16/flippy/engine/internal/client"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/evaluate"
	"github.com/lk16/flippy/engine/internal/gamefile"
	"github.com/lk16/flippy/engine/internal/models"
	"github.com/lk16/flippy/engine/internal/othello"
	"github.com/muesli/termenv"
)

var errNoServer = errors.New("a server URL is required")

func main() {
	config.LoadDotEnv()
	config.SetLogLevel()

	clientCfg := config.LoadClientConfig()

	boardString := flag.String("board", "", "the board to show, as 64 cells followed by -b or -w")
	filePath := flag.String("file", "", "position file to show")
	searchID := flag.String("search", "", "id of a stored search to show, requires -server")
	play := flag.String("play", "", "move to play before showing, such as d3")
	flag.StringVar(&clientCfg.ServerURL, "server", clientCfg.ServerURL, "Analysis server URL, moves are played locally when empty")
	flag.Parse()

	var apiClient *client.APIClient
	if clientCfg.ServerURL != "" {
		apiClient = client.NewAPIClient(clientCfg)
	}

	out := termenv.NewOutput(os.Stdout)

	var pos othello.Position
	var err error

	if *searchID != "" {
		if *boardString != "" || *filePath != "" {
			slog.Error("Use -search without -board or -file")
			os.Exit(1)
		}

		var record models.SearchRecord
		pos, record, err = loadSearch(apiClient, *searchID)
		if err != nil {
			slog.Error("Failed to load search", "error", err)
			os.Exit(1)
		}
		writeSearch(out, record)
	} else {
		pos, err = loadPosition(*boardString, *filePath)
		if err != nil {
			slog.Error("Failed to load position", "error", err)
			os.Exit(1)
		}
	}

	if *play != "" {
		pos, err = playMove(apiClient, pos, *play)
		if err != nil {
			slog.Error("Failed to play move", "error", err)
			os.Exit(1)
		}
	}

	show(out, pos)
}

func loadPosition(boardString, filePath string) (othello.Position, error) {
	switch {
	case boardString != "" && filePath != "":
		return othello.Position{}, errors.New("use either -board or -file, not both")
	case filePath != "":
		return gamefile.ReadFile(filePath)
	case boardString != "":
		return othello.NewPositionFromString(boardString)
	default:
		return othello.NewPositionStart(), nil
	}
}

// loadSearch fetches a stored search and the position it was run on.
func loadSearch(apiClient *client.APIClient, id string) (othello.Position, models.SearchRecord, error) {
	if apiClient == nil {
		return othello.Position{}, models.SearchRecord{}, errNoServer
	}

	searchID, err := models.ParseSearchID(id)
	if err != nil {
		return othello.Position{}, models.SearchRecord{}, err
	}

	record, err := apiClient.GetSearch(searchID)
	if err != nil {
		return othello.Position{}, models.SearchRecord{}, err
	}

	pos, err := othello.NewPositionFromString(record.Position)
	if err != nil {
		return othello.Position{}, models.SearchRecord{}, fmt.Errorf("stored search has a bad position: %w", err)
	}

	return pos, record, nil
}

// playMove plays a move given in field notation, on the server when there is one.
// Illegal moves are rejected.
func playMove(apiClient *client.APIClient, pos othello.Position, field string) (othello.Position, error) {
	move, err := othello.FieldToSquare(field)
	if err != nil {
		return othello.Position{}, err
	}

	if apiClient == nil {
		if err = pos.CheckMove(move); err != nil {
			return othello.Position{}, err
		}
		return pos.DoMove(move)
	}

	response, err := apiClient.Play(pos, move)
	if err != nil {
		return othello.Position{}, err
	}

	return othello.NewPositionFromString(response.Position)
}

func writeSearch(w io.Writer, record models.SearchRecord) {
	fmt.Fprintf(w, "search %s: %s at depth %d (%s), score %.1f, %d nodes\n",
		record.ID, record.Move().Field(), record.Depth, record.Preset, record.Score, record.Nodes)
}

// show prints the board with coloured discs, followed by the counts and the static evaluations.
func show(out *termenv.Output, pos othello.Position) {
	replacer := strings.NewReplacer(
		"●", out.String("●").Foreground(out.Color("#4E9A06")).Bold().String(),
		"○", out.String("○").Foreground(out.Color("#EEEEEC")).Bold().String(),
		"·", out.String("·").Foreground(out.Color("#C4A000")).String(),
	)

	for _, line := range pos.ASCIIArtLines() {
		fmt.Fprintln(out, replacer.Replace(line))
	}

	writeSummary(out, pos)
}

func writeSummary(w io.Writer, pos othello.Position) {
	counts := pos.Counts()
	fmt.Fprintf(w, "black: %d  white: %d  empty: %d\n", counts.Black, counts.White, counts.Empty)

	if pos.IsTerminal() {
		winner, _ := pos.Winner()
		if winner == othello.DRAW {
			fmt.Fprintln(w, "game over: draw")
		} else {
			fmt.Fprintf(w, "game over: %s wins\n", winner)
		}
		return
	}

	fmt.Fprintf(w, "to move: %s  moves: %s\n", pos.Turn(), strings.Join(models.MoveFields(pos.Moves()), " "))

	for _, name := range evaluate.Presets() {
		weights, err := evaluate.Preset(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s: %.1f\n", name, weights.Evaluate(pos, pos.Turn()))
	}
}
