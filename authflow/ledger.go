// Package authflow tracks pending authorization attempts between the
// login redirect and the callback, keyed by the one-time CSRF state value.
package authflow

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/pkg/errors"
)

const (
	// stateByteLength is the entropy of a state value before encoding.
	stateByteLength = 16

	// DefaultTTL is how long an unconsumed login attempt stays redeemable.
	DefaultTTL = 10 * time.Minute
)

// Ledger issues and redeems one-time state values. Each Begin sweeps
// expired entries first, so memory is bounded by login rate times TTL.
type Ledger struct {
	repo    Repo
	nowTime func() time.Time
}

// LedgerOption defines a function type to modify the Ledger instance.
type LedgerOption func(*Ledger)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.nowTime = nowFunc
	}
}

// NewLedger initializes a Ledger over the given repository.
func NewLedger(repo Repo, options ...LedgerOption) (*Ledger, error) {
	if repo == nil {
		return nil, errors.New("[NewLedger] repo is required")
	}

	ledger := &Ledger{
		repo:    repo,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(ledger)
	}

	return ledger, nil
}

// Begin generates a fresh state value and records the attempt. A collision
// silently overwrites the previous entry; at 16 random bytes the odds are
// negligible and stale entries expire anyway.
func (l *Ledger) Begin(env Environment) (string, error) {
	l.repo.DeleteExpired()

	state := generateRandomString(stateByteLength)
	if err := l.repo.Upsert(state, PendingAuth{Environment: env, CreatedAt: l.nowTime()}); err != nil {
		return "", errors.Wrap(err, "[Ledger Begin] failed to store pending authorization")
	}

	return state, nil
}

// Consume redeems a state value exactly once, returning the environment
// recorded at Begin. A second Consume of the same state fails.
func (l *Ledger) Consume(state string) (Environment, error) {
	pending, err := l.repo.Consume(state)
	if err != nil {
		return "", err
	}
	return pending.Environment, nil
}

// generateRandomString creates a random base64url string from length
// random bytes
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
