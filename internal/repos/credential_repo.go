package repos

import (
	"github.com/jmoiron/sqlx"

	"catalogd/internal/domain"
)

type CredentialRepo struct{ db *sqlx.DB }

func NewCredentialRepo(db *sqlx.DB) *CredentialRepo { return &CredentialRepo{db: db} }

// Get returns the stored credential, nil when none exists. More than
// one row is an integrity failure that must never be auto-resolved.
func (r *CredentialRepo) Get() (*domain.Credential, error) {
	var creds []domain.Credential
	if err := r.db.Select(&creds, `SELECT id, access_token, endpoint_url FROM credentials`); err != nil {
		return nil, err
	}
	switch len(creds) {
	case 0:
		return nil, nil
	case 1:
		return &creds[0], nil
	default:
		return nil, domain.ErrMultipleCredentials
	}
}

// Insert stores the credential under the pinned id. A concurrent
// bootstrap that inserted first wins; this call then changes nothing
// and the caller re-reads the surviving row.
func (r *CredentialRepo) Insert(token, url string) error {
	_, err := r.db.Exec(`
  INSERT INTO credentials(id, access_token, endpoint_url) VALUES (1, ?, ?)
  ON CONFLICT(id) DO NOTHING
`, token, url)
	return err
}
