package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/models"
)

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query       string                     `json:"query"`
	Suggestions []models.CompanySuggestion `json:"suggestions"`
	Labels      []string                   `json:"labels"`
}

// SearchHandler handles company search requests
type SearchHandler struct {
	searchService interfaces.CompanySearcher
	logger        arbor.ILogger
}

// NewSearchHandler creates a new search handler with dependencies
func NewSearchHandler(searchService interfaces.CompanySearcher, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// SearchHandler handles GET /api/search?q=query requests. A provider failure
// yields an empty suggestion list so the search box keeps working.
func (h *SearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")

	suggestions, err := h.searchService.Suggest(r.Context(), query)
	if err != nil {
		h.logger.Debug().Err(err).Str("query", query).Msg("Returning empty suggestions after search failure")
		suggestions = []models.CompanySuggestion{}
	}

	labels := make([]string, len(suggestions))
	for i, s := range suggestions {
		labels[i] = s.Label()
	}

	WriteJSON(w, http.StatusOK, SearchResponse{
		Query:       query,
		Suggestions: suggestions,
		Labels:      labels,
	})
}
