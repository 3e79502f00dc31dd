package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"catalogd/internal/domain"
	applog "catalogd/internal/log"
)

// detail mirrors the error body shape the partner-facing contract uses.
func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// respondErr maps core errors to HTTP statuses. Everything not in the
// taxonomy is a 500 with no internals leaked.
func respondErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return detail(c, fiber.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrConflict):
		return detail(c, fiber.StatusConflict, "Product of this name already exists")
	case errors.Is(err, domain.ErrInvalidGrowthBase):
		return detail(c, fiber.StatusUnprocessableEntity, "Growth undefined for zero starting price")
	default:
		applog.Error(c, "server.error", err, nil)
		return detail(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
