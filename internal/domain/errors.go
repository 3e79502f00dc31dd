package domain

import "errors"

// Sentinel errors crossing component boundaries. Repos and services
// return these as values; only the handler layer maps them to HTTP
// statuses.
var (
	// ErrNotFound reports a missing product or offer.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a product name already taken with a
	// different description.
	ErrConflict = errors.New("name already exists with different description")

	// ErrUpstream wraps partner API failures. Never surfaced to CRUD
	// callers; the next sync tick retries.
	ErrUpstream = errors.New("offers source unavailable")

	// ErrMultipleCredentials reports more than one stored credential
	// row. Fatal at startup, never auto-resolved.
	ErrMultipleCredentials = errors.New("multiple credentials stored")

	// ErrCredentialMismatch reports a stored credential bound to a
	// different endpoint than the configured one.
	ErrCredentialMismatch = errors.New("credential bound to different endpoint")

	// ErrInvalidGrowthBase reports a price series starting at zero,
	// for which percentage growth is undefined. Distinct from the
	// empty series, which is an expected state and not an error.
	ErrInvalidGrowthBase = errors.New("growth undefined for zero starting price")
)
