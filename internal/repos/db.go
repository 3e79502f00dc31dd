package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	// Cascading deletes depend on foreign_keys, which sqlite scopes to
	// the connection. The DSN pragma applies it to every pooled conn.
	if !strings.Contains(dsn, "_pragma") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Products
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL
);

-- Offers, keyed by the partner's foreign_id within one product
CREATE TABLE IF NOT EXISTS offers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  foreign_id INTEGER NOT NULL,
  items_in_stock INTEGER NOT NULL DEFAULT 0 CHECK (items_in_stock >= 0),
  UNIQUE(product_id, foreign_id)
);
CREATE INDEX IF NOT EXISTS idx_offers_product ON offers(product_id);

-- Price history, append-only; NULL price means "observed unpriced"
CREATE TABLE IF NOT EXISTS prices(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  offer_id INTEGER NOT NULL REFERENCES offers(id) ON DELETE CASCADE,
  price REAL,
  recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prices_offer ON prices(offer_id, recorded_at);

-- Partner API credential; id is pinned so inserts collide on purpose
CREATE TABLE IF NOT EXISTS credentials(
  id INTEGER PRIMARY KEY,
  access_token TEXT NOT NULL,
  endpoint_url TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}
