package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI Page routes (HTML templates)
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			http.MethodGet:  s.app.AuthHandler.LoginPageHandler,
			http.MethodPost: s.app.AuthHandler.LoginSubmitHandler,
		})
	})
	mux.HandleFunc("/logout", s.app.AuthHandler.LogoutHandler)

	// API routes - Analysis
	mux.HandleFunc("/api/analyze", s.app.AnalysisHandler.AnalyzeHandler)     // GET ?ticker=
	mux.HandleFunc("/api/analyze/batch", s.app.AnalysisHandler.BatchHandler) // POST {"tickers": [...]}
	mux.HandleFunc("/api/report", s.app.AnalysisHandler.ReportHandler)       // GET ?ticker=&format=html|markdown
	mux.HandleFunc("/api/search", s.app.SearchHandler.SearchHandler)         // GET ?q=

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleRoot serves the dashboard at "/" and 404s everything else the mux falls through to.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			s.app.APIHandler.NotFoundHandler(w, r)
			return
		}
		http.NotFound(w, r)
		return
	}
	s.app.PageHandler.DashboardHandler(w, r)
}
