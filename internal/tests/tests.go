package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/engine/internal"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/services"
	"github.com/stretchr/testify/require"
)

const TestToken = "test-token"

// NewTestApp builds an app without external services that requires TestToken.
func NewTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.ServerConfig{
		ServerHost: "localhost",
		ServerPort: "0",
		Token:      TestToken,
		CacheTTL:   config.DefaultCacheTTL,
		Engine: config.EngineConfig{
			Depth:  2,
			Preset: config.DefaultPreset,
		},
	}

	return internal.BuildApp(cfg, &services.Services{})
}

// Do sends a request with an optional JSON body and the test token to the app.
func Do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	req.Header.Set("X-Token", TestToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

// Decode reads a JSON response body into T.
func Decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var value T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&value))
	return value
}
