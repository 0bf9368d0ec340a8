package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/services/analysis"
	"github.com/ternarybob/finhealth/internal/services/auth"
	"github.com/ternarybob/finhealth/internal/templates"
)

const pageTitle = "Financial Health Dashboard"

// PageData is passed to every page template.
type PageData struct {
	Title      string
	Email      string
	Query      string
	Report     *analysis.Report
	Error      string
	LoginEmail string
}

type PageHandler struct {
	logger    arbor.ILogger
	templates *template.Template
	analyzer  Analyzer
}

// NewPageHandler parses the page templates. Files in templatesDir override
// the embedded pages of the same name.
func NewPageHandler(logger arbor.ILogger, analyzer Analyzer, templatesDir string) (*PageHandler, error) {
	tmpl, err := templates.Load(templatesDir, PageFuncs())
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		logger:    logger,
		templates: tmpl,
		analyzer:  analyzer,
	}, nil
}

// DashboardHandler serves GET / and analyzes ?ticker= when present.
func (h *PageHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	data := PageData{
		Title: pageTitle,
		Query: strings.TrimSpace(r.URL.Query().Get("ticker")),
	}
	if s := auth.SessionFromContext(r.Context()); s != nil {
		data.Email = s.Email
	}

	if data.Query != "" {
		data.Report = h.analyzer.Analyze(r.Context(), data.Query)
	}

	h.render(w, http.StatusOK, "dashboard.html", data)
}

// render writes the status before executing, so template errors are only logged.
func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().
			Err(err).
			Str("template", name).
			Msg("Failed to render page")
	}
}
