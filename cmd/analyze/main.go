package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"

	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/evaluate"
	"github.com/lk16/flippy/engine/internal/gamefile"
	"github.com/lk16/flippy/engine/internal/search"
	"golang.org/x/sync/errgroup"
)

const moveFileSuffix = ".move"

type analysis struct {
	path   string
	result search.Result
}

func main() {
	config.LoadDotEnv()
	config.SetLogLevel()

	cfg := config.LoadEngineConfig()

	depth := flag.Int("depth", cfg.Depth, "Search depth in plies")
	preset := flag.String("preset", cfg.Preset, "Evaluation preset")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of positions searched concurrently")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <position file>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 || *workers < 1 {
		flag.Usage()
		os.Exit(1)
	}

	weights, err := evaluate.Preset(*preset)
	if err != nil {
		slog.Error("Invalid preset", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = run(ctx, flag.Args(), weights, *depth, *workers, func(a analysis) {
		slog.Info(
			"Analyzed position",
			"file", a.path,
			"move", a.result.Move.Field(),
			"score", a.result.Score,
			"nodes", a.result.Nodes,
			"elapsed", a.result.Elapsed,
		)
	})
	if err != nil {
		slog.Error("Analysis failed", "error", err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

// run searches every position file and writes the chosen move next to it.
// It stops at the first file that fails.
func run(
	ctx context.Context,
	paths []string,
	weights evaluate.Weights,
	depth int,
	workers int,
	report func(analysis),
) error {
	g, ctx := errgroup.WithContext(ctx)

	var pending = make(chan string)
	var done = make(chan analysis)

	g.Go(func() error {
		defer close(pending)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case pending <- path:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}

	for range workers {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return analyzeFiles(ctx, weights, depth, pending, done)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(done)
		return nil
	})

	g.Go(func() error {
		for a := range done {
			report(a)
		}
		return nil
	})

	return g.Wait()
}

func analyzeFiles(
	ctx context.Context,
	weights evaluate.Weights,
	depth int,
	pending <-chan string,
	done chan<- analysis,
) error {
	searcher := search.NewSearcher(weights)

	for path := range pending {
		result, err := analyzeFile(searcher, path, depth)
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case done <- analysis{path: path, result: result}:
		}
	}
	return nil
}

func analyzeFile(searcher *search.Searcher, path string, depth int) (search.Result, error) {
	pos, err := gamefile.ReadFile(path)
	if err != nil {
		return search.Result{}, err
	}

	result, err := searcher.ChooseMove(pos, pos.Turn(), depth)
	if err != nil {
		return search.Result{}, fmt.Errorf("error searching %s: %w", path, err)
	}

	if err = gamefile.WriteMoveFile(movePath(path), result.Move); err != nil {
		return search.Result{}, err
	}

	return result, nil
}

// movePath returns the path of the file that holds the chosen move for a position file.
func movePath(path string) string {
	return path + moveFileSuffix
}
