package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/flippy/engine/internal/config"
	"github.com/lk16/flippy/engine/internal/evaluate"
	"github.com/lk16/flippy/engine/internal/models"
	"github.com/lk16/flippy/engine/internal/repository"
	"github.com/lk16/flippy/engine/internal/search"
)

// SuggestMove searches a position and returns the best move for the side to move.
func SuggestMove(c *fiber.Ctx) error {
	var payload models.MoveRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	pos, err := payload.Position()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	depth := payload.Depth
	if depth == 0 {
		depth = cfg.Engine.Depth
	}

	preset := payload.Preset
	if preset == "" {
		preset = cfg.Engine.Preset
	}

	weights, err := evaluate.Preset(preset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	repo := repository.NewSearchRepository(c)
	key := models.SearchKey(pos, depth, preset)

	cached, found, err := repo.LookupCached(c.Context(), key)
	if err != nil {
		slog.Warn("Failed to look up cached search", "error", err)
	}
	if found {
		cached.Cached = true
		return c.Status(fiber.StatusOK).JSON(cached)
	}

	result, err := search.NewSearcher(weights).ChooseMove(pos, pos.Turn(), depth)
	if err != nil {
		if errors.Is(err, search.ErrNoMoves) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	response := models.MoveResponse{
		ID:     uuid.New(),
		Move:   result.Move,
		Field:  result.Move.Field(),
		Score:  result.Score,
		Nodes:  result.Nodes,
		Depth:  depth,
		Preset: preset,
	}

	err = repo.InsertSearch(c.Context(), models.NewSearchRecord(pos, response))
	if err != nil && !errors.Is(err, repository.ErrStorageDisabled) {
		slog.Error("Failed to store search", "id", response.ID, "error", err)
	}

	if err = repo.StoreCached(c.Context(), key, response); err != nil {
		slog.Warn("Failed to cache search", "error", err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetPresets lists the names of the evaluation presets.
func GetPresets(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(evaluate.Presets())
}
