package clientfake

import (
	"context"
	"sync"

	"github.com/hitser/spotify-token-server/spotify"
)

var _ spotify.TokenClient = (*FakeTokenClient)(nil)

// FakeTokenClient is a stubbed TokenClient for tests. Set the *Func fields
// to control responses; call counts are tracked per operation.
type FakeTokenClient struct {
	ExchangeCodeFunc      func(ctx context.Context, code, redirectURI string) (*spotify.TokenResponse, error)
	RefreshFunc           func(ctx context.Context, refreshToken string) (*spotify.TokenResponse, error)
	ClientCredentialsFunc func(ctx context.Context) (*spotify.TokenResponse, error)

	mu                     sync.Mutex
	exchangeCodeCalls      int
	refreshCalls           int
	clientCredentialsCalls int
}

func NewFakeTokenClient() *FakeTokenClient {
	return &FakeTokenClient{}
}

func (f *FakeTokenClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*spotify.TokenResponse, error) {
	f.mu.Lock()
	f.exchangeCodeCalls++
	f.mu.Unlock()

	if f.ExchangeCodeFunc == nil {
		return nil, &spotify.UpstreamError{Stage: spotify.GrantAuthorizationCode, Detail: "no stub configured"}
	}
	return f.ExchangeCodeFunc(ctx, code, redirectURI)
}

func (f *FakeTokenClient) Refresh(ctx context.Context, refreshToken string) (*spotify.TokenResponse, error) {
	f.mu.Lock()
	f.refreshCalls++
	f.mu.Unlock()

	if f.RefreshFunc == nil {
		return nil, &spotify.UpstreamError{Stage: spotify.GrantRefreshToken, Detail: "no stub configured"}
	}
	return f.RefreshFunc(ctx, refreshToken)
}

func (f *FakeTokenClient) ClientCredentials(ctx context.Context) (*spotify.TokenResponse, error) {
	f.mu.Lock()
	f.clientCredentialsCalls++
	f.mu.Unlock()

	if f.ClientCredentialsFunc == nil {
		return nil, &spotify.UpstreamError{Stage: spotify.GrantClientCredentials, Detail: "no stub configured"}
	}
	return f.ClientCredentialsFunc(ctx)
}

func (f *FakeTokenClient) ExchangeCodeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exchangeCodeCalls
}

func (f *FakeTokenClient) RefreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

func (f *FakeTokenClient) ClientCredentialsCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clientCredentialsCalls
}
