// Package server exposes the token broker's HTTP surface.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/hitser/spotify-token-server/auth"
	"github.com/hitser/spotify-token-server/internal/config"
	"github.com/hitser/spotify-token-server/token"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

type Server struct {
	env    string // Environment (e.g., "development", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	flow   *auth.FlowService
	tokens *token.Manager
}

func New(cfg config.Config, flow *auth.FlowService, tokens *token.Manager) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("[Server New] config is required")
	}
	if flow == nil {
		return nil, fmt.Errorf("[Server New] flow service is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("[Server New] token manager is required")
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		flow:   flow,
		tokens: tokens,
		env:    cfg.GetEnv(),
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env == "production" {
		return // Skip logging outside development
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
