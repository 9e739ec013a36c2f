// Package token serves valid access tokens for session handles,
// refreshing expired ones on demand. Validity is checked lazily on each
// read; there is no proactive refresh.
package token

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/hitser/spotify-token-server/internal/errors"
	"github.com/hitser/spotify-token-server/sessions"
	"github.com/hitser/spotify-token-server/spotify"
)

// Session handles are opaque, but malformed ones are rejected before a
// store lookup. Covers UUIDs and base64url strings.
var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// Manager reads tokens from the session store and refreshes them through
// the Spotify accounts service when expired.
type Manager struct {
	store        sessions.Store
	spotify      spotify.TokenClient
	refreshGroup singleflight.Group
	nowTime      func() time.Time
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// NewManager initializes a new Manager with required dependencies.
func NewManager(store sessions.Store, client spotify.TokenClient, options ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.New("[NewManager] session store is required")
	}
	if client == nil {
		return nil, errors.New("[NewManager] spotify client is required")
	}

	m := &Manager{
		store:   store,
		spotify: client,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// ValidToken returns a currently-valid access token for the session. An
// unexpired token is served as stored, with no upstream call and no
// mutation. An expired one triggers exactly one refresh per session at a
// time; concurrent callers share the in-flight result rather than issuing
// a duplicate refresh, which could invalidate the first rotated refresh
// token. On refresh failure the stale record stays in place so a later
// call can retry the same refresh token.
func (m *Manager) ValidToken(ctx context.Context, sessionID string) (string, error) {
	if !sessionIDPattern.MatchString(sessionID) {
		return "", apperrors.ErrInvalidSession
	}

	record, err := m.store.Get(sessionID)
	if err != nil {
		return "", err
	}
	if !record.Expired(m.nowTime()) {
		return record.AccessToken, nil
	}

	v, err, _ := m.refreshGroup.Do(sessionID, func() (interface{}, error) {
		return m.refresh(ctx, sessionID)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *Manager) refresh(ctx context.Context, sessionID string) (string, error) {
	record, err := m.store.Get(sessionID)
	if err != nil {
		return "", err
	}
	// A caller that queued behind an in-flight refresh sees the fresh
	// token here without a second upstream call.
	if !record.Expired(m.nowTime()) {
		return record.AccessToken, nil
	}
	if record.RefreshToken == "" {
		return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "%v", apperrors.ErrNoRefreshToken)
	}

	resp, err := m.spotify.Refresh(ctx, record.RefreshToken)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrRefreshFailed, "%v", err)
	}

	if err := m.store.Update(sessionID, resp.AccessToken, resp.ExpiresIn, resp.RefreshToken); err != nil {
		return "", errors.Wrap(err, "[refresh] failed to update session")
	}

	return resp.AccessToken, nil
}

// TokenStatus reports whether a session currently holds a usable access
// token and for how much longer.
type TokenStatus struct {
	Valid     bool
	ExpiresIn time.Duration
}

// Status checks a session's token, refreshing it first if expired. An
// unknown session or a failed refresh yields Valid=false rather than an
// error; the caller is expected to restart the login flow.
func (m *Manager) Status(ctx context.Context, sessionID string) TokenStatus {
	if _, err := m.ValidToken(ctx, sessionID); err != nil {
		return TokenStatus{Valid: false}
	}

	record, err := m.store.Get(sessionID)
	if err != nil {
		return TokenStatus{Valid: false}
	}

	return TokenStatus{Valid: true, ExpiresIn: record.ExpiresAt.Sub(m.nowTime())}
}

// SearchToken obtains an application-only token via the client-credentials
// grant. It authenticates the app, not a user, and never touches the
// session store.
func (m *Manager) SearchToken(ctx context.Context) (*spotify.TokenResponse, error) {
	return m.spotify.ClientCredentials(ctx)
}
