package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/hitser/spotify-token-server/authflow"
	"github.com/hitser/spotify-token-server/internal/errors"
)

// LoginHandler begins the authorization flow: it records a pending
// authorization for the requested environment and sends the browser to
// Spotify's consent page.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := authflow.ParseEnvironment(r.URL.Query().Get("env"))

		redirectURL, err := s.flow.LoginURL(env)
		if err != nil {
			log.Error().Err(err).Str("env", env.String()).Msg("failed to build login redirect")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login_failed"})
			return
		}

		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// CallbackHandler processes the browser's return from Spotify. On success
// the browser is sent to the environment's frontend with the new session
// handle; on failure with an error code instead. The state consumption in
// the flow service is the sole CSRF check.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")
		errParam := r.URL.Query().Get("error")

		result, err := s.flow.Callback(r.Context(), code, state, errParam)
		frontend := s.config.GetFrontendURI(result.Environment.String())

		if err != nil {
			errCode := "token_exchange_failed"
			switch {
			case errors.Is(err, errors.ErrInvalidState):
				errCode = "state_mismatch"
			case errors.Is(err, errors.ErrCallbackError):
				errCode = "token_exchange_error"
			}
			log.Warn().Err(err).Str("code", errCode).Msg("authorization callback failed")
			http.Redirect(w, r, frontend+"/?error="+errCode, http.StatusFound)
			return
		}

		log.Info().Str("env", result.Environment.String()).Msg("session created")
		http.Redirect(w, r, frontend+"?session_id="+url.QueryEscape(result.SessionID), http.StatusFound)
	}
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}
}

// IndexHandler serves a minimal landing page with the login links.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeHTML)
		fmt.Fprintf(w, indexPage, s.config.GetAppName(), s.env, RouteLogin, RouteLogin)
	}
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body>
    <h1>Spotify Authorization Server</h1>
    <p>Environment: %s</p>
    <p><a href="%s?env=local">Login for Local Development</a></p>
    <p><a href="%s?env=production">Login for Production App</a></p>
</body>
</html>
`

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
