package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/finhealth/internal/app"
	"github.com/ternarybob/finhealth/internal/common"
)

const maxHeaderBytes = 64 << 10

// Server manages the HTTP server and routes
type Server struct {
	app    *app.App
	router *http.ServeMux
	server *http.Server
}

// timeouts sizes the connection deadlines around the per-ticker analysis budget
// so a slow provider yields an error report instead of a dropped connection.
type timeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

func serverTimeouts(cfg *common.Config) timeouts {
	analysis := common.ParseDuration(cfg.Analysis.Timeout, 60*time.Second)
	return timeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      analysis + 15*time.Second,
		idle:       60 * time.Second,
	}
}

// New creates the dashboard and API server for application
func New(application *app.App) *Server {
	s := &Server{
		app: application,
	}
	s.router = s.setupRoutes()

	t := serverTimeouts(application.Config)
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", application.Config.Server.Host, application.Config.Server.Port),
		Handler:           s.withMiddleware(s.router),
		ReadHeaderTimeout: t.readHeader,
		ReadTimeout:       t.read,
		WriteTimeout:      t.write,
		IdleTimeout:       t.idle,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	cfg := s.app.Config
	s.app.Logger.Info().
		Str("address", s.server.Addr).
		Bool("login_required", cfg.Auth.Enabled).
		Str("search_provider", cfg.Search.Provider).
		Str("write_timeout", s.server.WriteTimeout.String()).
		Msg("HTTP server starting")

	s.app.Logger.Info().
		Str("url", fmt.Sprintf("http://%s", s.server.Addr)).
		Msg("Dashboard available")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown waits for in-flight analyses until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	s.app.Logger.Info().Msg("Shutting down HTTP server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.app.Logger.Info().Msg("HTTP server stopped")
	return nil
}
