package config

import "strings"

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// The browser client runs on one of the two frontend origins; the server's
// own origin is allowed for the landing page's fetches.
func (Cors) GetAllowedOrigins() AllowedOrigins {
	spotify := Spotify{}
	return AllowedOrigins{
		spotify.GetFrontendURI("local"):      nullValue{},
		spotify.GetFrontendURI("production"): nullValue{},
		"http://localhost:3001":              nullValue{},
	}
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
