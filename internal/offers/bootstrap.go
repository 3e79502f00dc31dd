package offers

import (
	"context"
	"fmt"

	"catalogd/internal/domain"
	applog "catalogd/internal/log"
)

// CredentialStore is the slice of the store the bootstrap needs.
type CredentialStore interface {
	Get() (*domain.Credential, error)
	Insert(token, url string) error
}

// Authenticator obtains a new token from the partner.
type Authenticator interface {
	Authenticate(ctx context.Context) (string, error)
}

// EnsureCredential returns the deployment's partner access token,
// obtaining and persisting one on first startup. It runs before any
// other partner call. A stored credential bound to a different endpoint
// means the deployment was reconfigured against another credential
// epoch; that fails fast, before the partner is contacted, rather than
// proceeding with the wrong identity.
func EnsureCredential(ctx context.Context, store CredentialStore, auth Authenticator, configuredURL string) (string, error) {
	cred, err := store.Get()
	if err != nil {
		return "", err
	}
	if cred != nil {
		if cred.EndpointURL != configuredURL {
			return "", fmt.Errorf("%w: stored %s, configured %s",
				domain.ErrCredentialMismatch, cred.EndpointURL, configuredURL)
		}
		applog.Info(nil, "credential.reuse", nil)
		return cred.AccessToken, nil
	}

	token, err := auth.Authenticate(ctx)
	if err != nil {
		return "", err
	}
	if err := store.Insert(token, configuredURL); err != nil {
		return "", err
	}

	// Re-read: a concurrent bootstrap may have inserted first, in
	// which case our insert was a no-op and its token wins.
	cred, err = store.Get()
	if err != nil {
		return "", err
	}
	if cred == nil {
		return "", fmt.Errorf("credential missing after insert")
	}
	if cred.EndpointURL != configuredURL {
		return "", fmt.Errorf("%w: stored %s, configured %s",
			domain.ErrCredentialMismatch, cred.EndpointURL, configuredURL)
	}
	applog.Info(nil, "credential.created", nil)
	return cred.AccessToken, nil
}
