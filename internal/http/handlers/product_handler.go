package handlers

import (
	"github.com/gofiber/fiber/v2"

	"catalogd/internal/domain"
	applog "catalogd/internal/log"
	"catalogd/internal/services"
	"catalogd/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (pr *productRequest) validate() (domain.Product, bool) {
	name, ok := validate.Name(pr.Name)
	if !ok {
		return domain.Product{}, false
	}
	desc, ok := validate.Description(pr.Description)
	if !ok {
		return domain.Product{}, false
	}
	return domain.Product{Name: name, Description: desc}, true
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	p, ok := req.validate()
	if !ok {
		applog.Warn(c, "validation.fail", map[string]any{"field": "product"})
		return detail(c, fiber.StatusBadRequest, "Invalid product payload")
	}

	created, err := h.Catalog.CreateProduct(p)
	if err != nil {
		return respondErr(c, err)
	}
	applog.Info(c, "product.create", map[string]any{"product_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return detail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return detail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	p, ok := req.validate()
	if !ok {
		applog.Warn(c, "validation.fail", map[string]any{"field": "product"})
		return detail(c, fiber.StatusBadRequest, "Invalid product payload")
	}

	updated, err := h.Catalog.UpdateProduct(id, p)
	if err != nil {
		return respondErr(c, err)
	}
	applog.Info(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(updated)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return detail(c, fiber.StatusBadRequest, "Invalid product id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		return respondErr(c, err)
	}
	applog.Info(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(nil)
}
