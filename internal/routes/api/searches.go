package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/flippy/engine/internal/models"
	"github.com/lk16/flippy/engine/internal/repository"
)

// GetSearch returns a stored search.
func GetSearch(c *fiber.Ctx) error {
	id, err := models.ParseSearchID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	repo := repository.NewSearchRepository(c)
	record, err := repo.GetSearch(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSearchNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, repository.ErrStorageDisabled):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(record)
}
