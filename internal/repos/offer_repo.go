package repos

import (
	"github.com/jmoiron/sqlx"

	"catalogd/internal/domain"
)

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

// Upsert writes one snapshot of fresh offers: new (product_id,
// foreign_id) pairs are inserted, existing ones get their stock
// refreshed. One transaction per snapshot, committed independently of
// the other cycle steps.
func (r *OfferRepo) Upsert(productID int64, fresh []domain.FreshOffer) error {
	if len(fresh) == 0 {
		return nil
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, f := range fresh {
		if _, err := tx.Exec(`
  INSERT INTO offers(product_id, foreign_id, items_in_stock) VALUES (?, ?, ?)
  ON CONFLICT(product_id, foreign_id) DO UPDATE SET items_in_stock = excluded.items_in_stock
`, productID, f.ForeignID, f.ItemsInStock); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteNotIn removes the product's offers whose foreign id is absent
// from the latest snapshot. An empty snapshot clears them all.
func (r *OfferRepo) DeleteNotIn(productID int64, foreignIDs []int64) error {
	if len(foreignIDs) == 0 {
		_, err := r.db.Exec(`DELETE FROM offers WHERE product_id = ?`, productID)
		return err
	}
	query, args, err := sqlx.In(
		`DELETE FROM offers WHERE product_id = ? AND foreign_id NOT IN (?)`,
		productID, foreignIDs)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(r.db.Rebind(query), args...)
	return err
}

// latestPrice picks the newest price record per offer; ties on
// recorded_at break toward the higher (later) id.
const latestPrice = `
  SELECT p2.price FROM prices p2
  WHERE p2.offer_id = o.id
  ORDER BY p2.recorded_at DESC, p2.id DESC
  LIMIT 1`

// CurrentOffers returns the product's stored offers with their latest
// recorded price. Unknown products yield an empty slice, not an error.
func (r *OfferRepo) CurrentOffers(productID int64, onStock bool) ([]domain.Offer, error) {
	query := `
  SELECT o.id AS offer_id, o.product_id, o.foreign_id, o.items_in_stock,
         (` + latestPrice + `) AS price
  FROM offers o
  WHERE o.product_id = ?`
	if onStock {
		query += ` AND o.items_in_stock > 0`
	}
	query += ` ORDER BY o.id`

	var out []domain.Offer
	err := r.db.Select(&out, query, productID)
	return out, err
}

// StoredForDiff returns the reconciler's view of the product's offers:
// surrogate id, foreign id and latest recorded price.
func (r *OfferRepo) StoredForDiff(productID int64) ([]domain.StoredOffer, error) {
	var out []domain.StoredOffer
	err := r.db.Select(&out, `
  SELECT o.id AS offer_id, o.foreign_id,
         (`+latestPrice+`) AS price
  FROM offers o
  WHERE o.product_id = ?
  ORDER BY o.id`, productID)
	return out, err
}

// InsertPrices appends pending price records, all stamped recordedAt.
func (r *OfferRepo) InsertPrices(inserts []domain.PriceInsert, recordedAt string) error {
	if len(inserts) == 0 {
		return nil
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, in := range inserts {
		if _, err := tx.Exec(`
  INSERT INTO prices(offer_id, price, recorded_at) VALUES (?, ?, ?)
`, in.OfferID, in.Price, recordedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PriceHistory returns the offer's priced records inside the optional
// [start, end] window, oldest first. Records observed without a price
// carry no information for the series and are skipped.
func (r *OfferRepo) PriceHistory(offerID int64, start, end string) ([]domain.PricePoint, error) {
	query := `SELECT price, recorded_at FROM prices WHERE offer_id = ? AND price IS NOT NULL`
	args := []any{offerID}
	if start != "" {
		query += ` AND recorded_at >= ?`
		args = append(args, start)
	}
	if end != "" {
		query += ` AND recorded_at <= ?`
		args = append(args, end)
	}
	query += ` ORDER BY recorded_at, id`

	var out []domain.PricePoint
	err := r.db.Select(&out, query, args...)
	return out, err
}
