package config

const (
	clientIDVar     = "CLIENT_ID"
	clientSecretVar = "CLIENT_SECRET"
	redirectURIVar  = "REDIRECT_URI"

	frontendLocalVar      = "FRONTEND_URI_LOCAL"
	frontendProductionVar = "FRONTEND_URI_PRODUCTION"

	defaultFrontendLocal      = "http://localhost:63342/Playground/hitser"
	defaultFrontendProduction = "https://hitser-practice.netlify.app"
)

type Spotify struct{}

var _ SpotifyConfig = Spotify{}

func (Spotify) GetClientID() string {
	return GetEnv(clientIDVar, "")
}

func (Spotify) GetClientSecret() string {
	return GetEnv(clientSecretVar, "")
}

// GetRedirectURI returns the redirect URI registered with the Spotify app.
// This must exactly match one of the redirect URIs configured in the
// Spotify developer dashboard.
func (Spotify) GetRedirectURI() string {
	return GetEnv(redirectURIVar, "http://localhost:3001/callback")
}

// GetFrontendURI returns the frontend origin for the given environment.
// Anything other than "production" maps to the local development origin.
func (Spotify) GetFrontendURI(environment string) string {
	if environment == envProduction {
		return GetEnv(frontendProductionVar, defaultFrontendProduction)
	}
	return GetEnv(frontendLocalVar, defaultFrontendLocal)
}
