// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motomind/internal/common/config"
	apperrors "motomind/internal/common/errors"
	"motomind/internal/common/logger"
	"motomind/internal/common/validation"
	"motomind/internal/govcheck"
	"motomind/internal/models"
)

// Recommender runs one recommendation request.
type Recommender interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.Recommendation, error)
}

// GovLookup resolves a plate against government records.
type GovLookup interface {
	Lookup(ctx context.Context, plate string) (*govcheck.Output, error)
}

// Pinger is a dependency checked by /ready.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the server routes to. GovCheck may be nil,
// in which case the lookup route is not mounted.
type Deps struct {
	Recommender Recommender
	GovCheck    GovLookup
	Readiness   map[string]Pinger
}

type Server struct {
	httpServer      *http.Server
	deps            Deps
	validator       *validation.Validator
	errHandler      *apperrors.ErrorHandler
	logger          logger.Logger
	allowedOrigins  map[string]bool
	allowAnyOrigin  bool
	shutdownTimeout time.Duration
}

func New(cfg config.ServerConfig, deps Deps, log logger.Logger) *Server {
	log = log.WithFields(map[string]interface{}{"component": "http"})

	s := &Server{
		deps:            deps,
		validator:       validation.MustNewValidator(validation.RecommendationRequestSchema),
		errHandler:      apperrors.NewErrorHandler(log),
		logger:          log,
		allowedOrigins:  make(map[string]bool),
		shutdownTimeout: config.GetDuration(cfg.ShutdownTimeout),
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			s.allowAnyOrigin = true
		}
		s.allowedOrigins[o] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/recommendations", s.handleRecommendations)
	if deps.GovCheck != nil {
		mux.HandleFunc("GET /api/gov-check/{plate}", s.handleGovCheck)
	}
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withRequestID(s.withLogging(s.withRecovery(s.withCORS(mux)))),
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	return serve(ctx, s.httpServer, s.shutdownTimeout, s.logger)
}

// NewMetricsServer serves Prometheus metrics and a liveness probe on a
// separate port.
func NewMetricsServer(cfg config.ServerConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	return &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// RunMetrics serves srv until ctx is cancelled.
func RunMetrics(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log logger.Logger) error {
	return serve(ctx, srv, shutdownTimeout, log.WithFields(map[string]interface{}{"component": "metrics"}))
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server", map[string]interface{}{"addr": srv.Addr})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s: %w", srv.Addr, err)
	}
	return nil
}
