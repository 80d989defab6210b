package main

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/lk16/flippy/engine/internal/client"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/evaluate"
	"github.com/lk16/flippy/engine/internal/gamefile"
	"github.com/lk16/flippy/engine/internal/othello"
	"github.com/lk16/flippy/engine/internal/search"
	"github.com/lk16/flippy/engine/internal/tests"
	"github.com/stretchr/testify/require"
)

func writeStart(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "input.txt")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	require.NoError(t, gamefile.Write(file, othello.NewPositionStart()))
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunLocal(t *testing.T) {
	dir := t.TempDir()
	input := writeStart(t, dir)
	output := filepath.Join(dir, "output.txt")

	require.NoError(t, run(input, output, 1, "classic", chooseLocal))
	require.Equal(t, "2 3\n", readOutput(t, output))
}

func TestRunRemote(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := tests.NewTestApp(t)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	apiClient := client.NewAPIClient(&config.ClientConfig{
		ServerURL: "http://" + ln.Addr().String(),
		Token:     tests.TestToken,
	})

	dir := t.TempDir()
	input := writeStart(t, dir)
	output := filepath.Join(dir, "output.txt")

	require.NoError(t, run(input, output, 1, "classic", chooseRemote(apiClient)))
	require.Equal(t, "2 3\n", readOutput(t, output))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeStart(t, dir)
	output := filepath.Join(dir, "output.txt")

	require.ErrorIs(t, run(input, output, 1, "unknown", chooseLocal), evaluate.ErrUnknownPreset)
	require.ErrorIs(t, run(input, output, 0, "classic", chooseLocal), search.ErrInvalidDepth)
	require.Error(t, run(filepath.Join(dir, "missing.txt"), output, 1, "classic", chooseLocal))

	_, err := os.Stat(output)
	require.ErrorIs(t, err, os.ErrNotExist)
}
