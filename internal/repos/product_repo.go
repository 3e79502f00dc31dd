package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"catalogd/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// Create inserts the product and returns it with its assigned id.
// Re-posting an identical (name, description) pair returns the existing
// row; the same name with a different description is a conflict.
func (r *ProductRepo) Create(p domain.Product) (domain.Product, error) {
	if _, err := r.db.Exec(`
  INSERT INTO products(name, description) VALUES (?, ?)
  ON CONFLICT(name) DO NOTHING
`, p.Name, p.Description); err != nil {
		return domain.Product{}, err
	}

	var out domain.Product
	err := r.db.Get(&out, `
  SELECT id, name, description FROM products
  WHERE name = ? AND description = ?
`, p.Name, p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrConflict
	}
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT id, name, description FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) Update(id int64, p domain.Product) (domain.Product, error) {
	res, err := r.db.Exec(`UPDATE products SET name = ?, description = ? WHERE id = ?`,
		p.Name, p.Description, id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, domain.ErrConflict
		}
		return domain.Product{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, err
	}
	if n == 0 {
		return domain.Product{}, domain.ErrNotFound
	}
	p.ID = id
	return p, nil
}

// Delete removes the product; its offers and price records cascade.
func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) ListIDs() ([]int64, error) {
	var ids []int64
	err := r.db.Select(&ids, `SELECT id FROM products ORDER BY id`)
	return ids, err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
