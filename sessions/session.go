// Package sessions is the authoritative store for issued Spotify
// credentials, keyed by the opaque session handle returned to the browser.
package sessions

import "time"

// TokenRecord holds the token pair issued for one authenticated session.
// The access token is only valid for bearer use while now < ExpiresAt;
// once past that instant it must be refreshed before being served again.
type TokenRecord struct {
	ID           string    // Opaque session handle (UUID)
	AccessToken  string    // Spotify bearer token
	RefreshToken string    // Long-lived credential for refresh; retained when Spotify withholds a rotation
	ExpiresAt    time.Time // Absolute expiry of AccessToken
	CreatedAt    time.Time // When the session was created
}

// Expired reports whether the access token is past its expiry at now.
func (r TokenRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}
