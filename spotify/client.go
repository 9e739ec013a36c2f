// Package spotify wraps the Spotify accounts service token endpoint.
//
// Wire contract per https://developer.spotify.com/documentation/web-api/tutorials/code-flow
package spotify

import (
	"context"

	"golang.org/x/oauth2"
)

const (
	// AuthURL is Spotify's user authorization endpoint.
	AuthURL = "https://accounts.spotify.com/authorize"
	// TokenURL is Spotify's token endpoint, shared by all three grant types.
	TokenURL = "https://accounts.spotify.com/api/token"
)

// Grant types, doubling as UpstreamError stages.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantRefreshToken      = "refresh_token"
	GrantClientCredentials = "client_credentials"
)

// Endpoint returns Spotify's OAuth2 endpoint pair for use with
// oauth2.Config.
func Endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:  AuthURL,
		TokenURL: TokenURL,
	}
}

// TokenResponse is the token endpoint's response body. RefreshToken is
// only present on the authorization-code grant and, occasionally, on a
// refresh when Spotify decides to rotate it.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenClient is the boundary to the Spotify accounts service. Each call
// is a single synchronous RPC; failures surface as *UpstreamError and are
// never retried here (retry policy belongs to the caller).
type TokenClient interface {
	// ExchangeCode redeems an authorization code. redirectURI must match
	// the one sent on the authorize redirect.
	ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenResponse, error)

	// Refresh obtains a new access token for a refresh token.
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)

	// ClientCredentials obtains an application-only token, not tied to
	// any user.
	ClientCredentials(ctx context.Context) (*TokenResponse, error)
}
