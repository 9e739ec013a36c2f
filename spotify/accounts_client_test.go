package spotify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hitser/spotify-token-server/spotify"
)

const (
	testClientID     = "test-client-id"
	testClientSecret = "test-client-secret"
)

// recordedRequest captures what the accounts endpoint received.
type recordedRequest struct {
	form     url.Values
	username string
	password string
	hasBasic bool
}

func newAccountsStub(t *testing.T, status int, body string) (*spotify.AccountsClient, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		recorded.form = r.PostForm
		recorded.username, recorded.password, recorded.hasBasic = r.BasicAuth()
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	client := spotify.NewAccountsClient(testClientID, testClientSecret,
		spotify.WithTokenURL(ts.URL),
		spotify.WithHTTPClient(ts.Client()),
	)
	return client, recorded
}

func TestAccountsClient_ExchangeCode(t *testing.T) {
	client, recorded := newAccountsStub(t, http.StatusOK,
		`{"access_token":"AT1","token_type":"Bearer","expires_in":3600,"refresh_token":"RT1"}`)

	resp, err := client.ExchangeCode(context.Background(), "code123", "http://localhost:3001/callback")
	require.NoError(t, err)
	require.Equal(t, "AT1", resp.AccessToken)
	require.Equal(t, "Bearer", resp.TokenType)
	require.Equal(t, 3600, resp.ExpiresIn)
	require.Equal(t, "RT1", resp.RefreshToken)

	require.True(t, recorded.hasBasic)
	require.Equal(t, testClientID, recorded.username)
	require.Equal(t, testClientSecret, recorded.password)
	require.Equal(t, "authorization_code", recorded.form.Get("grant_type"))
	require.Equal(t, "code123", recorded.form.Get("code"))
	require.Equal(t, "http://localhost:3001/callback", recorded.form.Get("redirect_uri"))
}

func TestAccountsClient_Refresh(t *testing.T) {
	t.Run("with rotated refresh token", func(t *testing.T) {
		client, recorded := newAccountsStub(t, http.StatusOK,
			`{"access_token":"AT2","token_type":"Bearer","expires_in":3600,"refresh_token":"RT2"}`)

		resp, err := client.Refresh(context.Background(), "RT1")
		require.NoError(t, err)
		require.Equal(t, "AT2", resp.AccessToken)
		require.Equal(t, "RT2", resp.RefreshToken)

		require.Equal(t, "refresh_token", recorded.form.Get("grant_type"))
		require.Equal(t, "RT1", recorded.form.Get("refresh_token"))
	})

	t.Run("without rotated refresh token", func(t *testing.T) {
		client, _ := newAccountsStub(t, http.StatusOK,
			`{"access_token":"AT2","token_type":"Bearer","expires_in":3600}`)

		resp, err := client.Refresh(context.Background(), "RT1")
		require.NoError(t, err)
		require.Equal(t, "AT2", resp.AccessToken)
		require.Empty(t, resp.RefreshToken)
	})
}

func TestAccountsClient_ClientCredentials(t *testing.T) {
	client, recorded := newAccountsStub(t, http.StatusOK,
		`{"access_token":"APP_TOKEN","token_type":"Bearer","expires_in":3600}`)

	resp, err := client.ClientCredentials(context.Background())
	require.NoError(t, err)
	require.Equal(t, "APP_TOKEN", resp.AccessToken)

	require.Equal(t, "client_credentials", recorded.form.Get("grant_type"))
	require.Empty(t, recorded.form.Get("code"))
	require.Empty(t, recorded.form.Get("refresh_token"))
}

func TestAccountsClient_NonSuccessStatus(t *testing.T) {
	client, _ := newAccountsStub(t, http.StatusBadRequest, `{"error":"invalid_grant"}`)

	_, err := client.Refresh(context.Background(), "RT1")
	require.Error(t, err)

	var upstreamErr *spotify.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, spotify.GrantRefreshToken, upstreamErr.Stage)
	require.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	require.Contains(t, upstreamErr.Detail, "invalid_grant")
}

func TestAccountsClient_TransportError(t *testing.T) {
	// Nothing listens here; the dial fails.
	client := spotify.NewAccountsClient(testClientID, testClientSecret,
		spotify.WithTokenURL("http://127.0.0.1:1/api/token"))

	_, err := client.ClientCredentials(context.Background())
	require.Error(t, err)

	var upstreamErr *spotify.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, spotify.GrantClientCredentials, upstreamErr.Stage)
	require.Zero(t, upstreamErr.StatusCode)
}

func TestAccountsClient_MalformedResponse(t *testing.T) {
	client, _ := newAccountsStub(t, http.StatusOK, `not json`)

	_, err := client.ExchangeCode(context.Background(), "code123", "http://localhost:3001/callback")
	require.Error(t, err)

	var upstreamErr *spotify.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Contains(t, upstreamErr.Detail, "malformed token response")
}
