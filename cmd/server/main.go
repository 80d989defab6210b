package main

import (
	"log/slog"
	"os"

	"github.com/lk16/flippy/engine/internal"
)

func main() {
	// Setup app
	app, cfg, services := internal.SetupApp()
	defer services.Close()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	slog.Info("Starting server", "address", address, "depth", cfg.Engine.Depth, "preset", cfg.Engine.Preset)

	if err := app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
		services.Close()
		os.Exit(1)
	}
}
