package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hitser/spotify-token-server/internal/errors"
)

// TokenHandler serves a valid access token for a session handle,
// refreshing it first when expired.
func (s *Server) TokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")

		accessToken, err := s.tokens.ValidToken(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, errors.ErrSessionNotFound) || errors.Is(err, errors.ErrInvalidSession) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired session"})
				return
			}
			log.Error().Err(err).Msg("token refresh failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to refresh token"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"access_token": accessToken})
	}
}

// SearchTokenHandler serves an app-only token via the client-credentials
// grant, for search access without a user session.
func (s *Server) SearchTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := s.tokens.SearchToken(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("client credentials request failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to get Spotify token"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": resp.AccessToken,
			"expires_in":   resp.ExpiresIn,
		})
	}
}

// CheckTokenHandler reports whether a session's token is usable,
// refreshing it first when expired. Always responds 200; expires_in is in
// milliseconds, matching what the frontend already consumes.
func (s *Server) CheckTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")

		status := s.tokens.Status(r.Context(), sessionID)
		if !status.Valid {
			writeJSON(w, http.StatusOK, map[string]any{
				"valid":   false,
				"message": "Invalid or expired session. Please authenticate again.",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"valid":      true,
			"expires_in": status.ExpiresIn.Milliseconds(),
		})
	}
}
