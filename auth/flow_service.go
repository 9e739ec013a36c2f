// Package auth orchestrates the authorization-code flow: building the
// login redirect and processing the callback into a stored session.
package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/hitser/spotify-token-server/authflow"
	"github.com/hitser/spotify-token-server/internal/config"
	apperrors "github.com/hitser/spotify-token-server/internal/errors"
	"github.com/hitser/spotify-token-server/sessions"
	"github.com/hitser/spotify-token-server/spotify"
)

// ScopeString is the fixed scope set requested on every login. The broker
// does no scope management beyond this.
const ScopeString = "streaming user-read-email user-read-private user-read-playback-state user-modify-playback-state"

// CallbackResult carries the outcome of a processed callback. Environment
// is always set, on failure too, so the caller knows which frontend origin
// to send the browser back to.
type CallbackResult struct {
	SessionID   string
	Environment authflow.Environment
}

// FlowService implements the authorization-code flow against the pending
// ledger, the session store, and the Spotify accounts service.
type FlowService struct {
	cfg     config.SpotifyConfig
	ledger  *authflow.Ledger
	store   sessions.Store
	spotify spotify.TokenClient
}

// NewFlowService initializes a new FlowService with required dependencies.
func NewFlowService(cfg config.SpotifyConfig, ledger *authflow.Ledger, store sessions.Store, client spotify.TokenClient) (*FlowService, error) {
	if cfg == nil {
		return nil, errors.New("[NewFlowService] config is required")
	}
	if ledger == nil {
		return nil, errors.New("[NewFlowService] ledger is required")
	}
	if store == nil {
		return nil, errors.New("[NewFlowService] session store is required")
	}
	if client == nil {
		return nil, errors.New("[NewFlowService] spotify client is required")
	}

	return &FlowService{
		cfg:     cfg,
		ledger:  ledger,
		store:   store,
		spotify: client,
	}, nil
}

// LoginURL records a pending authorization for env and returns the Spotify
// authorize URL the browser should be redirected to. show_dialog forces
// the consent screen so a shared machine can switch accounts.
func (fs *FlowService) LoginURL(env authflow.Environment) (string, error) {
	state, err := fs.ledger.Begin(env)
	if err != nil {
		return "", errors.Wrap(err, "[LoginURL] failed to begin pending authorization")
	}

	oauthConfig := &oauth2.Config{
		ClientID:    fs.cfg.GetClientID(),
		Endpoint:    spotify.Endpoint(),
		RedirectURL: fs.cfg.GetRedirectURI(),
		Scopes:      strings.Fields(ScopeString),
	}

	return oauthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true")), nil
}

// Callback validates the returned state against the ledger, exchanges the
// code, and creates a session. The state is consumed whether or not the
// exchange succeeds, so a given callback can never be replayed. Either a
// session is created or the store is left untouched.
func (fs *FlowService) Callback(ctx context.Context, code, state, errParam string) (CallbackResult, error) {
	env := authflow.EnvLocal
	consumed := false
	if state != "" {
		if e, err := fs.ledger.Consume(state); err == nil {
			env = e
			consumed = true
		}
	}
	result := CallbackResult{Environment: env}

	if errParam != "" {
		return result, apperrors.Wrapf(apperrors.ErrCallbackError, "spotify reported %q", errParam)
	}
	if !consumed {
		return result, apperrors.ErrInvalidState
	}
	if code == "" {
		return result, apperrors.ErrInvalidState
	}

	tokenResp, err := fs.spotify.ExchangeCode(ctx, code, fs.cfg.GetRedirectURI())
	if err != nil {
		return result, apperrors.Wrapf(apperrors.ErrExchangeFailed, "%v", err)
	}

	sessionID, err := fs.store.Create(tokenResp.AccessToken, tokenResp.RefreshToken, tokenResp.ExpiresIn)
	if err != nil {
		return result, errors.Wrap(err, "[Callback] failed to create session")
	}

	result.SessionID = sessionID
	return result, nil
}
