package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catalogd/internal/services"
	"catalogd/internal/validate"
)

type OfferHandler struct {
	Catalog *services.CatalogService
}

// List serves GET /product/:id/offers. Unknown products read as an
// empty list; on_stock=true keeps only offers with stock.
func (h *OfferHandler) List(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return detail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	offers, err := h.Catalog.ListOffers(id, c.QueryBool("on_stock", false))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(offers)
}

// Prices serves GET /offer/:id/prices with optional RFC 3339 start/end
// bounds. An offer with no recorded prices yields
// {"prices": [], "growth": null}.
func (h *OfferHandler) Prices(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return detail(c, fiber.StatusBadRequest, "Invalid offer id")
	}
	start, ok := validate.Timestamp(c.Query("start"))
	if !ok {
		return detail(c, fiber.StatusBadRequest, "Invalid start timestamp")
	}
	end, ok := validate.Timestamp(c.Query("end"))
	if !ok {
		return detail(c, fiber.StatusBadRequest, "Invalid end timestamp")
	}

	history, err := h.Catalog.GetPriceHistory(id, start, end)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(history)
}
