// Package server exposes peeling over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	POST   /v1/peel                   body: {"document": {...}, "options": {...}}
//	POST   /v1/hull                   body: {"points": [{"x": 0, "y": 0}, ...]}
//	POST   /v1/pointsets              body: point set document, ?name=
//	GET    /v1/pointsets
//	GET    /v1/pointsets/{id}
//	DELETE /v1/pointsets/{id}
//	POST   /v1/pointsets/{id}/peel    body: options, may be empty
//
// Peel responses carry text artifacts (svg, dot, json) verbatim and binary
// artifacts (png, pdf) base64-encoded.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/onion/pkg/pipeline"
	"github.com/matzehuels/onion/pkg/store"
)

const (
	// MaxBodyBytes caps request bodies.
	MaxBodyBytes = 8 << 20

	shutdownTimeout = 10 * time.Second
)

// Config holds the server's collaborators. Runner and Store are required.
type Config struct {
	Runner   *pipeline.Runner
	Store    store.Store
	Logger   *log.Logger
	Gatherer prometheus.Gatherer // nil disables /metrics
}

// Server is the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server and registers its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/peel", s.handlePeel)
		r.Post("/hull", s.handleHull)
		r.Route("/pointsets", func(r chi.Router) {
			r.Post("/", s.handleCreatePointSet)
			r.Get("/", s.handleListPointSets)
			r.Get("/{id}", s.handleGetPointSet)
			r.Delete("/{id}", s.handleDeletePointSet)
			r.Post("/{id}/peel", s.handlePeelPointSet)
		})
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
