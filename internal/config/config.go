package config

type Config interface {
	EnvConfig
	SpotifyConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsProduction() bool
}

type SpotifyConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetFrontendURI(environment string) string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Spotify
	Cors
}

func New() Config {
	return mainConfig{}
}
