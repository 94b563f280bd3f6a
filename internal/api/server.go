// Package api assembles the HTTP server: routes, middleware, metrics.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quantdesk/quantdesk/internal/api/handler"
	"github.com/quantdesk/quantdesk/internal/api/middleware"
	"github.com/quantdesk/quantdesk/internal/backtest"
	"github.com/quantdesk/quantdesk/internal/metrics"
	"github.com/quantdesk/quantdesk/internal/strategy"
)

// Config holds server configuration.
type Config struct {
	Host            string
	Port            int
	APIKey          string
	Version         string
	MetricsPath     string
	DefaultCapital  float64
	DefaultInterval string
}

// Server is the HTTP server for the backtesting API.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(cfg Config, backtester *backtest.Backtester, catalog *strategy.Catalog, registry *metrics.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	backtests := handler.NewBacktestHandler(backtester, cfg.DefaultCapital, cfg.DefaultInterval)
	strategies := handler.NewStrategiesHandler(catalog)
	health := handler.NewHealthHandler(cfg.Version)

	requireUser := middleware.RequireUser()
	mux.Handle("POST /api/backtests", requireUser(http.HandlerFunc(backtests.Create)))
	mux.Handle("GET /api/backtests", requireUser(http.HandlerFunc(backtests.List)))
	mux.Handle("GET /api/backtests/{id}", requireUser(http.HandlerFunc(backtests.Get)))
	mux.HandleFunc("GET /api/strategies", strategies.List)
	mux.HandleFunc("GET /api/health", health.Check)

	if registry != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	var root http.Handler = mux
	root = middleware.APIKeyAuth(cfg.APIKey)(root)
	if registry != nil {
		root = metrics.HTTPMiddleware(registry)(root)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      root,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the root handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
