// Package server exposes the lead search pipeline and stored leads over an
// HTTP JSON API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/config"
	"github.com/leadscout/leadscout/internal/model"
	"github.com/leadscout/leadscout/internal/store"
)

// Searcher runs the lead discovery pipeline.
type Searcher interface {
	Search(ctx context.Context, sector, location string, maxResults int, forceRefresh bool) ([]model.Lead, error)
}

// Server is the HTTP API server.
type Server struct {
	cfg      config.ServerConfig
	auth     config.AuthConfig
	searcher Searcher
	store    store.Store
	router   chi.Router
}

// New builds a Server with its routes and middleware. The store may be nil,
// in which case lead persistence and lookup by id are disabled.
func New(cfg *config.Config, searcher Searcher, st store.Store) *Server {
	s := &Server{
		cfg:      cfg.Server,
		auth:     cfg.Auth,
		searcher: searcher,
		store:    st,
	}

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(rateLimit(cfg.Server.RatePerMinute, cfg.Server.RateBurst))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Handle("/auth/*", s.authProxy())
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/leads/search", s.handleSearch)
			r.Get("/leads/{id}", s.handleGetLead)
		})
	})
	s.router = r

	return s
}

// Handler returns the root HTTP handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		grace := time.Duration(s.cfg.ShutdownGraceSecs) * time.Second
		if grace <= 0 {
			grace = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}
