package server

const (
	RouteIndex       = "/"
	RouteHealth      = "/health"
	RouteLogin       = "/login"
	RouteCallback    = "/callback"
	RouteToken       = "/spotify-token"
	RouteSearchToken = "/spotify-search-token"
	RouteCheckToken  = "/check-token"
)
