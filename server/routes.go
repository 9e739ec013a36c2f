package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, s.withMiddleware(s.IndexHandler()))
	s.RegisterRouteFunc("GET "+RouteHealth, s.withMiddleware(s.HealthHandler()))

	// AUTHORIZATION FLOW
	s.RegisterRouteFunc("GET "+RouteLogin, s.withMiddleware(s.LoginHandler()))
	s.RegisterRouteFunc("GET "+RouteCallback, s.withMiddleware(s.CallbackHandler()))

	// TOKEN ACCESS
	s.RegisterRouteFunc("GET "+RouteToken, s.withMiddleware(s.TokenHandler()))
	s.RegisterRouteFunc("GET "+RouteSearchToken, s.withMiddleware(s.SearchTokenHandler()))
	s.RegisterRouteFunc("GET "+RouteCheckToken, s.withMiddleware(s.CheckTokenHandler()))

	// CORS preflight; CorsMiddleware answers before the handler runs
	s.RegisterRouteFunc("OPTIONS /", s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func (s *Server) withMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return ChainMiddleware(h,
		s.RecoverMiddleware,
		s.LoggingMiddleware,
		s.CorsMiddleware,
	)
}
