package services

import (
	"math"

	"catalogd/internal/domain"
)

// Growth returns the percentage change between the first and last point
// of a chronological price series, rounded to two decimals. An empty
// series has no growth to report and yields (nil, nil); callers must
// treat that as "undefined", not zero. A series starting at zero has no
// meaningful base and fails with ErrInvalidGrowthBase.
func Growth(points []domain.PricePoint) (*float64, error) {
	if len(points) == 0 {
		return nil, nil
	}
	first := points[0].Price
	last := points[len(points)-1].Price
	if first == 0 {
		return nil, domain.ErrInvalidGrowthBase
	}
	g := math.Round((last-first)/(first/100)*100) / 100
	return &g, nil
}

// Diff compares a fresh partner snapshot against the stored offers and
// returns the price records to append: one per fresh offer whose price
// differs from the latest recorded one (a missing price on either side
// counts as different). Fresh offers with no stored counterpart are
// returned as orphan foreign ids; the caller logs them. They normally
// mean the upsert step has not run yet for this snapshot and are not
// fatal. Pure and order-stable over the fresh input.
func Diff(fresh []domain.FreshOffer, stored []domain.StoredOffer) (inserts []domain.PriceInsert, orphans []int64) {
	for _, f := range fresh {
		matched := false
		for _, s := range stored {
			if f.ForeignID != s.ForeignID {
				continue
			}
			matched = true
			if !priceEqual(f.Price, s.Price) {
				inserts = append(inserts, domain.PriceInsert{OfferID: s.OfferID, Price: f.Price})
			}
			break
		}
		if !matched {
			orphans = append(orphans, f.ForeignID)
		}
	}
	return inserts, orphans
}

func priceEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// CleanupOffers prepares stored offers for a client-facing response:
// offers without a meaningful price (none recorded, or zero) are not
// for sale yet and are dropped, and the partner's foreign id is blanked
// so it cannot leak out.
func CleanupOffers(offers []domain.Offer) []domain.Offer {
	cleaned := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if o.Price == nil || *o.Price == 0 {
			continue
		}
		o.ForeignID = 0
		cleaned = append(cleaned, o)
	}
	return cleaned
}
