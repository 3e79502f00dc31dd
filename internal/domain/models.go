package domain

// Product is a catalog entry mirrored to the partner marketplace.
type Product struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

// FreshOffer is one offer exactly as the partner Offers API reports it.
// A nil Price means the partner lists the offer without a price.
type FreshOffer struct {
	ForeignID    int64    `json:"id"`
	Price        *float64 `json:"price"`
	ItemsInStock int      `json:"items_in_stock"`
}

// Offer is a stored offer joined with its latest recorded price.
// ForeignID is the partner's identifier and never leaves the service.
type Offer struct {
	OfferID      int64    `db:"offer_id" json:"offer_id"`
	ProductID    int64    `db:"product_id" json:"product_id"`
	ForeignID    int64    `db:"foreign_id" json:"-"`
	Price        *float64 `db:"price" json:"price"`
	ItemsInStock int      `db:"items_in_stock" json:"items_in_stock"`
}

// StoredOffer is the slice of an offer the reconciler compares against:
// the internal surrogate id, the partner id, and the latest recorded
// price (nil when the offer has never been priced).
type StoredOffer struct {
	OfferID   int64    `db:"offer_id"`
	ForeignID int64    `db:"foreign_id"`
	Price     *float64 `db:"price"`
}

// PriceInsert is a pending append to an offer's price history.
type PriceInsert struct {
	OfferID int64
	Price   *float64
}

// PricePoint is one record of an offer's price history. ValidFrom is an
// RFC 3339 UTC timestamp; stored as TEXT so the values sort and compare
// lexicographically.
type PricePoint struct {
	Price     float64 `db:"price" json:"price"`
	ValidFrom string  `db:"recorded_at" json:"valid_from"`
}

// PriceHistory is the price-read payload: the recorded points inside
// the requested window plus the growth over them. Growth is nil when
// the window holds no points.
type PriceHistory struct {
	Prices []PricePoint `json:"prices"`
	Growth *float64     `json:"growth"`
}

// Credential is the single partner API identity of this deployment.
type Credential struct {
	ID          int64  `db:"id"`
	AccessToken string `db:"access_token"`
	EndpointURL string `db:"endpoint_url"`
}
