// Package httpapi wires the HTTP surface of the finance tracker.
// Handlers stay thin: each one pulls the caller's session from the
// request context and drives the slice operations.
package httpapi

import (
	"context"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"log/slog"

	"fintrack/internal/session"
)

// AuthConfig controls how the caller's identity is resolved. An empty
// Secret disables JWT verification and enables the X-User-ID development
// fallback.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// ReadyChecker is implemented by stores that can report readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Server wires handlers and middleware using Chi.
type Server struct {
	sessions *session.Manager
	ready    ReadyChecker
	authCfg  AuthConfig
	currency string
	log      *slog.Logger
	rt       *chi.Mux
}

// New constructs the HTTP server with routes and middleware. currency is
// the ISO 4217 code summary amounts are reported in.
func New(sessions *session.Manager, ready ReadyChecker, authCfg AuthConfig, currency string, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		sessions: sessions,
		ready:    ready,
		authCfg:  authCfg,
		currency: currency,
		log:      logger,
		rt:       r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }
