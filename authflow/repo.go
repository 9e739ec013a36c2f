package authflow

import "time"

// PendingAuth records a login attempt between the redirect to Spotify and
// the browser's return to /callback.
type PendingAuth struct {
	Environment Environment
	CreatedAt   time.Time
}

type Repo interface {
	// Upsert stores a pending authorization under its state value,
	// silently overwriting any existing entry.
	Upsert(state string, pending PendingAuth) error

	// Consume atomically looks up and removes the entry for state.
	// Returns errors.ErrStateNotFound if the state is unknown, expired,
	// or was already consumed.
	Consume(state string) (PendingAuth, error)

	// DeleteExpired removes entries older than the repository's TTL.
	DeleteExpired()
}
