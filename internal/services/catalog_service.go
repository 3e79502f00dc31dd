package services

import (
	"context"
	"time"

	"catalogd/internal/domain"
	applog "catalogd/internal/log"
	"catalogd/internal/repos"
)

// OffersSource is the partner Offers API as the core consumes it.
type OffersSource interface {
	FetchOffers(ctx context.Context, productID int64) ([]domain.FreshOffer, error)
	RegisterProduct(ctx context.Context, p domain.Product) error
}

type CatalogService struct {
	Products *repos.ProductRepo
	Offers   *repos.OfferRepo
	Partner  OffersSource
}

func NewCatalogService(products *repos.ProductRepo, offers *repos.OfferRepo, partner OffersSource) *CatalogService {
	return &CatalogService{Products: products, Offers: offers, Partner: partner}
}

// CreateProduct stores the product and registers it with the partner in
// the background; the response does not wait for the partner, and a
// registration failure only logs (the product stays usable locally).
func (s *CatalogService) CreateProduct(p domain.Product) (domain.Product, error) {
	created, err := s.Products.Create(p)
	if err != nil {
		return domain.Product{}, err
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.Partner.RegisterProduct(ctx, created); err != nil {
			applog.Error(nil, "partner.register.fail", err, map[string]any{"product_id": created.ID})
		}
	}()
	return created, nil
}

func (s *CatalogService) GetProduct(id int64) (domain.Product, error) {
	return s.Products.Get(id)
}

func (s *CatalogService) UpdateProduct(id int64, p domain.Product) (domain.Product, error) {
	return s.Products.Update(id, p)
}

func (s *CatalogService) DeleteProduct(id int64) error {
	return s.Products.Delete(id)
}

// ListOffers returns the product's sellable offers. Offers the partner
// has not priced yet are filtered out and the foreign id never leaves
// the service. An unknown product reads as "no offers".
func (s *CatalogService) ListOffers(productID int64, onStock bool) ([]domain.Offer, error) {
	offers, err := s.Offers.CurrentOffers(productID, onStock)
	if err != nil {
		return nil, err
	}
	return CleanupOffers(offers), nil
}

// GetPriceHistory returns the offer's recorded prices inside the
// optional window and the growth over them. An offer with no recorded
// prices reads as an empty series with undefined growth.
func (s *CatalogService) GetPriceHistory(offerID int64, start, end string) (domain.PriceHistory, error) {
	points, err := s.Offers.PriceHistory(offerID, start, end)
	if err != nil {
		return domain.PriceHistory{}, err
	}
	growth, err := Growth(points)
	if err != nil {
		return domain.PriceHistory{}, err
	}
	if points == nil {
		points = []domain.PricePoint{}
	}
	return domain.PriceHistory{Prices: points, Growth: growth}, nil
}
