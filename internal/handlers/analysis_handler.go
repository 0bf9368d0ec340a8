package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/services/analysis"
	"github.com/ternarybob/finhealth/internal/services/report"
)

// AnalysisHandler serves score analyses as JSON and rendered reports
type AnalysisHandler struct {
	analyzer Analyzer
	logger   arbor.ILogger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzer Analyzer, logger arbor.ILogger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// AnalyzeHandler handles GET /api/analyze?ticker=AAPL.
// A failed analysis is still a 200 with the error and hints in the body.
func (h *AnalysisHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.TrimSpace(r.URL.Query().Get("ticker"))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	WriteJSON(w, http.StatusOK, h.analyzer.Analyze(r.Context(), ticker))
}

// BatchHandler handles POST /api/analyze/batch with body {"tickers": [...]}
func (h *AnalysisHandler) BatchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req analysis.BatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to parse batch request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reports, err := h.analyzer.AnalyzeBatch(r.Context(), req.Tickers)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(reports),
		"reports": reports,
	})
}

// ReportHandler handles GET /api/report?ticker=AAPL&format=html|markdown
func (h *AnalysisHandler) ReportHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.TrimSpace(r.URL.Query().Get("ticker"))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "markdown" {
		WriteError(w, http.StatusBadRequest, "format must be html or markdown")
		return
	}

	md := report.Render(h.analyzer.Analyze(r.Context(), ticker))

	if format == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(md))
		return
	}

	body, err := report.ToHTML(md)
	if err != nil {
		h.logger.Error().Err(err).Str("ticker", ticker).Msg("Failed to render report")
		WriteError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>" + ticker + "</title></head><body>\n"))
	w.Write([]byte(body))
	w.Write([]byte("</body></html>\n"))
}
