package auth_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hitser/spotify-token-server/auth"
	"github.com/hitser/spotify-token-server/authflow"
	"github.com/hitser/spotify-token-server/internal/config"
	"github.com/hitser/spotify-token-server/internal/errors"
	"github.com/hitser/spotify-token-server/sessions"
	"github.com/hitser/spotify-token-server/spotify"
	"github.com/hitser/spotify-token-server/spotify/clientfake"
)

const (
	testClientID    = "test-client-id"
	testRedirectURI = "http://localhost:3001/callback"
)

type testFixture struct {
	cfg     config.Config
	store   *sessions.InMemoryStore
	client  *clientfake.FakeTokenClient
	service *auth.FlowService
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	t.Setenv("CLIENT_ID", testClientID)
	t.Setenv("CLIENT_SECRET", "test-client-secret")
	t.Setenv("REDIRECT_URI", testRedirectURI)

	cfg := config.New()
	ledger, err := authflow.NewLedger(authflow.NewInMemoryRepo(authflow.DefaultTTL))
	require.NoError(t, err)

	store := sessions.NewInMemoryStore()
	client := clientfake.NewFakeTokenClient()

	service, err := auth.NewFlowService(cfg, ledger, store, client)
	require.NoError(t, err)

	return &testFixture{
		cfg:     cfg,
		store:   store,
		client:  client,
		service: service,
	}
}

// beginLogin runs LoginURL and returns the state embedded in the redirect.
func (f *testFixture) beginLogin(t *testing.T, env authflow.Environment) string {
	t.Helper()

	redirectURL, err := f.service.LoginURL(env)
	require.NoError(t, err)

	u, err := url.Parse(redirectURL)
	require.NoError(t, err)

	state := u.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestFlowService_LoginURL(t *testing.T) {
	f := setupTestFixture(t)

	redirectURL, err := f.service.LoginURL(authflow.EnvLocal)
	require.NoError(t, err)

	u, err := url.Parse(redirectURL)
	require.NoError(t, err)
	require.Equal(t, "accounts.spotify.com", u.Host)
	require.Equal(t, "/authorize", u.Path)

	q := u.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, testClientID, q.Get("client_id"))
	require.Equal(t, auth.ScopeString, q.Get("scope"))
	require.Equal(t, testRedirectURI, q.Get("redirect_uri"))
	require.Equal(t, "true", q.Get("show_dialog"))
	require.NotEmpty(t, q.Get("state"))
}

func TestFlowService_Callback_HappyPath(t *testing.T) {
	f := setupTestFixture(t)
	state := f.beginLogin(t, authflow.EnvLocal)

	f.client.ExchangeCodeFunc = func(_ context.Context, code, redirectURI string) (*spotify.TokenResponse, error) {
		require.Equal(t, "validcode", code)
		require.Equal(t, testRedirectURI, redirectURI)
		return &spotify.TokenResponse{AccessToken: "AT1", RefreshToken: "RT1", ExpiresIn: 3600}, nil
	}

	result, err := f.service.Callback(context.Background(), "validcode", state, "")
	require.NoError(t, err)
	require.NotEmpty(t, result.SessionID)
	require.Equal(t, authflow.EnvLocal, result.Environment)

	record, err := f.store.Get(result.SessionID)
	require.NoError(t, err)
	require.Equal(t, "AT1", record.AccessToken)
	require.Equal(t, "RT1", record.RefreshToken)
}

func TestFlowService_Callback_EnvironmentRoundTrip(t *testing.T) {
	f := setupTestFixture(t)
	state := f.beginLogin(t, authflow.EnvProduction)

	f.client.ExchangeCodeFunc = func(_ context.Context, _, _ string) (*spotify.TokenResponse, error) {
		return &spotify.TokenResponse{AccessToken: "AT1", RefreshToken: "RT1", ExpiresIn: 3600}, nil
	}

	result, err := f.service.Callback(context.Background(), "validcode", state, "")
	require.NoError(t, err)
	require.Equal(t, authflow.EnvProduction, result.Environment)
}

func TestFlowService_Callback_InvalidState(t *testing.T) {
	f := setupTestFixture(t)

	result, err := f.service.Callback(context.Background(), "abc", "unknown123", "")
	require.ErrorIs(t, err, errors.ErrInvalidState)
	require.Empty(t, result.SessionID)

	// No exchange attempted, no session created.
	require.Equal(t, 0, f.client.ExchangeCodeCalls())
}

func TestFlowService_Callback_StateReplay(t *testing.T) {
	f := setupTestFixture(t)
	state := f.beginLogin(t, authflow.EnvLocal)

	f.client.ExchangeCodeFunc = func(_ context.Context, _, _ string) (*spotify.TokenResponse, error) {
		return &spotify.TokenResponse{AccessToken: "AT1", RefreshToken: "RT1", ExpiresIn: 3600}, nil
	}

	_, err := f.service.Callback(context.Background(), "validcode", state, "")
	require.NoError(t, err)

	// A replayed callback with the same state must be rejected.
	_, err = f.service.Callback(context.Background(), "validcode", state, "")
	require.ErrorIs(t, err, errors.ErrInvalidState)
	require.Equal(t, 1, f.client.ExchangeCodeCalls())
}

func TestFlowService_Callback_MissingCode(t *testing.T) {
	f := setupTestFixture(t)
	state := f.beginLogin(t, authflow.EnvLocal)

	_, err := f.service.Callback(context.Background(), "", state, "")
	require.ErrorIs(t, err, errors.ErrInvalidState)
	require.Equal(t, 0, f.client.ExchangeCodeCalls())
}

func TestFlowService_Callback_UpstreamErrorParam(t *testing.T) {
	f := setupTestFixture(t)
	state := f.beginLogin(t, authflow.EnvProduction)

	result, err := f.service.Callback(context.Background(), "", state, "access_denied")
	require.ErrorIs(t, err, errors.ErrCallbackError)
	require.Empty(t, result.SessionID)
	require.Equal(t, authflow.EnvProduction, result.Environment)
	require.Equal(t, 0, f.client.ExchangeCodeCalls())

	// The state was still consumed; it cannot be replayed afterwards.
	_, err = f.service.Callback(context.Background(), "validcode", state, "")
	require.ErrorIs(t, err, errors.ErrInvalidState)
}

func TestFlowService_Callback_ExchangeFailure(t *testing.T) {
	f := setupTestFixture(t)
	state := f.beginLogin(t, authflow.EnvLocal)

	f.client.ExchangeCodeFunc = func(_ context.Context, _, _ string) (*spotify.TokenResponse, error) {
		return nil, &spotify.UpstreamError{Stage: spotify.GrantAuthorizationCode, StatusCode: 400, Detail: "invalid_grant"}
	}

	result, err := f.service.Callback(context.Background(), "badcode", state, "")
	require.ErrorIs(t, err, errors.ErrExchangeFailed)
	require.Empty(t, result.SessionID)
}

func TestNewFlowService_Validation(t *testing.T) {
	f := setupTestFixture(t)
	ledger, err := authflow.NewLedger(authflow.NewInMemoryRepo(authflow.DefaultTTL))
	require.NoError(t, err)

	_, err = auth.NewFlowService(nil, ledger, f.store, f.client)
	require.Error(t, err)

	_, err = auth.NewFlowService(f.cfg, nil, f.store, f.client)
	require.Error(t, err)

	_, err = auth.NewFlowService(f.cfg, ledger, nil, f.client)
	require.Error(t, err)

	_, err = auth.NewFlowService(f.cfg, ledger, f.store, nil)
	require.Error(t, err)
}
