package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lk16/flippy/engine/internal/client"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/evaluate"
	"github.com/lk16/flippy/engine/internal/gamefile"
	"github.com/lk16/flippy/engine/internal/othello"
	"github.com/lk16/flippy/engine/internal/search"
)

// moveChooser picks a move for the side to move.
type moveChooser func(pos othello.Position, depth int, preset string) (othello.Square, error)

func main() {
	config.LoadDotEnv()
	config.SetLogLevel()

	cfg := config.LoadEngineConfig()
	clientCfg := config.LoadClientConfig()

	depth := flag.Int("depth", cfg.Depth, "Search depth in plies")
	preset := flag.String("preset", cfg.Preset, "Evaluation preset")
	flag.StringVar(&clientCfg.ServerURL, "server", clientCfg.ServerURL, "Analysis server URL, searches locally when empty")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <input> <output>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	choose := chooseLocal
	if clientCfg.ServerURL != "" {
		choose = chooseRemote(client.NewAPIClient(clientCfg))
	}

	if err := run(flag.Arg(0), flag.Arg(1), *depth, *preset, choose); err != nil {
		slog.Error("Failed to choose move", "error", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath string, depth int, preset string, choose moveChooser) error {
	pos, err := gamefile.ReadFile(inputPath)
	if err != nil {
		return err
	}

	move, err := choose(pos, depth, preset)
	if err != nil {
		return fmt.Errorf("error choosing move for %s: %w", inputPath, err)
	}

	return gamefile.WriteMoveFile(outputPath, move)
}

func chooseLocal(pos othello.Position, depth int, preset string) (othello.Square, error) {
	weights, err := evaluate.Preset(preset)
	if err != nil {
		return othello.NoSquare, err
	}

	result, err := search.NewSearcher(weights).ChooseMove(pos, pos.Turn(), depth)
	if err != nil {
		return othello.NoSquare, err
	}

	slog.Info("Chose move", "move", result.Move.Field(), "score", result.Score, "nodes", result.Nodes)
	return result.Move, nil
}

func chooseRemote(apiClient *client.APIClient) moveChooser {
	return func(pos othello.Position, depth int, preset string) (othello.Square, error) {
		response, err := apiClient.SuggestMove(pos, depth, preset)
		if err != nil {
			return othello.NoSquare, err
		}

		slog.Info("Server chose move", "move", response.Field, "score", response.Score, "id", response.ID, "cached", response.Cached)
		return response.Move, nil
	}
}
