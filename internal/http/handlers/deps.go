package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"catalogd/internal/repos"
	"catalogd/internal/services"
)

type Deps struct {
	ProductHandler *ProductHandler
	OfferHandler   *OfferHandler
}

func NewDeps(db *sqlx.DB, partner services.OffersSource) *Deps {
	prodRepo := repos.NewProductRepo(db)
	offerRepo := repos.NewOfferRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, offerRepo, partner)

	return &Deps{
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		OfferHandler:   &OfferHandler{Catalog: catalogSvc},
	}
}

// Register wires the route table onto the app.
func Register(app *fiber.App, d *Deps) {
	app.Post("/product", d.ProductHandler.Create)
	app.Get("/product/:id", d.ProductHandler.Get)
	app.Put("/product/:id", d.ProductHandler.Update)
	app.Delete("/product/:id", d.ProductHandler.Delete)

	app.Get("/product/:id/offers", d.OfferHandler.List)
	app.Get("/offer/:id/prices", d.OfferHandler.Prices)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}
