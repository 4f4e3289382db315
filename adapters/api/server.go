// Package api exposes the titration calculator over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"titrate/app"
	"titrate/domain/titration"
	"titrate/internal"
)

// maxBodyBytes bounds scenario request bodies
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to the curve service
type Server struct {
	router  *chi.Mux
	service *app.CurveService
	base    titration.Scenario
	logger  *internal.Logger
}

// NewServer creates the API. Request bodies overlay base, so clients may send
// only the fields they want to change.
func NewServer(service *app.CurveService, base titration.Scenario, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		base:    base,
		logger:  logger.With("API"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/curves", s.handleCreateCurve)
		r.Get("/curves", s.handleListCurves)
		r.Get("/curves/{id}", s.handleGetCurve)
		r.Get("/curves/{id}/report", s.handleCurveReport)
		r.Post("/react", s.handleReact)
	})
}

// ServeHTTP lets the server be mounted or exercised with httptest
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
