package spotify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 1 << 20

var _ TokenClient = (*AccountsClient)(nil)

// AccountsClient talks to the Spotify accounts token endpoint over HTTP,
// authenticating every request with HTTP Basic from the static client
// id/secret.
type AccountsClient struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
}

// AccountsClientOption defines a function type to modify the
// AccountsClient instance.
type AccountsClientOption func(*AccountsClient)

// WithHTTPClient overrides the HTTP client (primarily for testing and for
// callers that need a different timeout).
func WithHTTPClient(c *http.Client) AccountsClientOption {
	return func(ac *AccountsClient) {
		ac.httpClient = c
	}
}

// WithTokenURL overrides the token endpoint URL (primarily for testing).
func WithTokenURL(u string) AccountsClientOption {
	return func(ac *AccountsClient) {
		ac.tokenURL = u
	}
}

// NewAccountsClient creates a token client for the given Spotify app
// credentials. The default HTTP client carries a 10s timeout so a hung
// upstream call cannot pin a handler forever.
func NewAccountsClient(clientID, clientSecret string, options ...AccountsClientOption) *AccountsClient {
	ac := &AccountsClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     TokenURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range options {
		opt(ac)
	}

	return ac
}

// ExchangeCode redeems an authorization code for an access/refresh token
// pair.
func (ac *AccountsClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":   {GrantAuthorizationCode},
		"code":         {code},
		"redirect_uri": {redirectURI},
	}
	return ac.postForm(ctx, GrantAuthorizationCode, form)
}

// Refresh obtains a new access token. The response may or may not carry a
// rotated refresh token.
func (ac *AccountsClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":    {GrantRefreshToken},
		"refresh_token": {refreshToken},
	}
	return ac.postForm(ctx, GrantRefreshToken, form)
}

// ClientCredentials obtains an app-only token for search access.
func (ac *AccountsClient) ClientCredentials(ctx context.Context) (*TokenResponse, error) {
	form := url.Values{
		"grant_type": {GrantClientCredentials},
	}
	return ac.postForm(ctx, GrantClientCredentials, form)
}

func (ac *AccountsClient) postForm(ctx context.Context, stage string, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ac.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &UpstreamError{Stage: stage, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(ac.clientID, ac.clientSecret)

	resp, err := ac.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Stage: stage, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &UpstreamError{Stage: stage, StatusCode: resp.StatusCode, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Stage: stage, StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, &UpstreamError{Stage: stage, StatusCode: resp.StatusCode, Detail: "malformed token response: " + err.Error()}
	}

	return &tokenResp, nil
}
