package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/engine/internal/models"
)

// PlayMove applies a legal move to a position and returns the resulting position.
// Illegal moves are rejected instead of forfeiting the game.
func PlayMove(c *fiber.Ctx) error {
	var payload models.PlayRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	pos, err := payload.Position()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err = pos.CheckMove(payload.Move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	child, err := pos.DoMove(payload.Move)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(models.NewPositionResponse(child))
}
