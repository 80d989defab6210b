package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/models"
	"github.com/lk16/flippy/engine/internal/othello"
)

const clientTimeout = 60 * time.Second

var ErrUnauthorized = errors.New("server rejected token")

// APIClient talks to the analysis server.
type APIClient struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	httpClient *http.Client
}

func NewAPIClient(config *config.ClientConfig) *APIClient {
	return &APIClient{
		config: config,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}
}

// ErrorResponse is the body the server sends with a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func logRequestAsCurl(request *http.Request, body []byte) {
	// Do not build string if we're not logging it
	if !slog.Default().Enabled(request.Context(), slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(request.Method)
	builder.WriteString(" '")
	builder.WriteString(request.URL.String())
	builder.WriteString("'")

	for key, values := range request.Header {
		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if len(body) > 0 {
		builder.WriteString(" -d '")
		builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
		builder.WriteString("'")
	}

	slog.Debug("Sending request", "curl", builder.String())
}

// request sends a request and decodes the JSON response into result.
func (c *APIClient) request(method string, path string, payload any, result any) error {
	var body []byte

	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	request, err := http.NewRequest(method, strings.TrimSuffix(c.config.ServerURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if c.config.Token != "" {
		request.Header.Set("x-token", c.config.Token)
	}

	logRequestAsCurl(request, body)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	slog.Debug("Received response", "status", response.Status, "body", string(responseBody))

	if response.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errorResponse ErrorResponse
		if json.Unmarshal(responseBody, &errorResponse) == nil && errorResponse.Error != "" {
			return fmt.Errorf("server returned %v: %s", response.Status, errorResponse.Error)
		}
		return fmt.Errorf("server returned unexpected status %v", response.Status)
	}

	if err = json.Unmarshal(responseBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// SuggestMove asks the server for the best move in a position.
func (c *APIClient) SuggestMove(pos othello.Position, depth int, preset string) (models.MoveResponse, error) {
	payload := models.MoveRequest{
		Board:  pos.Grid(),
		Turn:   pos.Turn(),
		Moves:  pos.Moves(),
		Depth:  depth,
		Preset: preset,
	}

	var response models.MoveResponse
	if err := c.request(http.MethodPost, "/api/move", payload, &response); err != nil {
		return models.MoveResponse{}, fmt.Errorf("failed to suggest move: %w", err)
	}

	return response, nil
}

// Play applies a move on the server and returns the resulting position.
func (c *APIClient) Play(pos othello.Position, move othello.Square) (models.PositionResponse, error) {
	payload := models.PlayRequest{
		Board: pos.Grid(),
		Turn:  pos.Turn(),
		Move:  move,
	}

	var response models.PositionResponse
	if err := c.request(http.MethodPost, "/api/play", payload, &response); err != nil {
		return models.PositionResponse{}, fmt.Errorf("failed to play move: %w", err)
	}

	return response, nil
}

// GetSearch loads a stored search.
func (c *APIClient) GetSearch(id uuid.UUID) (models.SearchRecord, error) {
	var record models.SearchRecord
	if err := c.request(http.MethodGet, "/api/searches/"+id.String(), nil, &record); err != nil {
		return models.SearchRecord{}, fmt.Errorf("failed to get search: %w", err)
	}

	return record, nil
}
