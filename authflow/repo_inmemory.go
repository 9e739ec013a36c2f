package authflow

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/hitser/spotify-token-server/internal/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface. Entries expire after the configured TTL; no janitor goroutine
// runs, expired entries are dropped lazily via DeleteExpired.
type InMemoryRepo struct {
	mu      sync.Mutex
	entries *cache.Cache
}

// NewInMemoryRepo creates a new in-memory pending-authorization repository
// whose entries expire after ttl.
func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		entries: cache.New(ttl, 0),
	}
}

// Upsert stores or overwrites a pending authorization.
func (r *InMemoryRepo) Upsert(state string, pending PendingAuth) error {
	if state == "" {
		return errors.ErrInvalidState
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries.SetDefault(state, pending)
	return nil
}

// Consume looks up and removes a pending authorization in one step. The
// mutex makes the lookup-and-delete atomic so that of two racing callbacks
// exactly one wins.
func (r *InMemoryRepo) Consume(state string) (PendingAuth, error) {
	if state == "" {
		return PendingAuth{}, errors.ErrStateNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.entries.Get(state)
	if !ok {
		return PendingAuth{}, errors.ErrStateNotFound
	}
	r.entries.Delete(state)

	return v.(PendingAuth), nil
}

// DeleteExpired removes all entries past their TTL.
func (r *InMemoryRepo) DeleteExpired() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries.DeleteExpired()
}
