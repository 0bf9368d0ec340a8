// Package search turns free-text company queries into ticker suggestions.
package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/models"
)

// DefaultMinQuery is the shortest query sent to a provider.
const DefaultMinQuery = 2

// Provider queries one search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.CompanySuggestion, error)
}

// Service implements interfaces.CompanySearcher on top of a Provider.
type Service struct {
	provider Provider
	minQuery int
	logger   arbor.ILogger
}

var _ interfaces.CompanySearcher = (*Service)(nil)

// NewService creates a search service. minQuery below 1 uses DefaultMinQuery.
func NewService(provider Provider, minQuery int, logger arbor.ILogger) *Service {
	if minQuery < 1 {
		minQuery = DefaultMinQuery
	}
	return &Service{
		provider: provider,
		minQuery: minQuery,
		logger:   logger,
	}
}

// Suggest returns candidate companies for query. Short queries return an
// empty list without contacting the provider.
func (s *Service) Suggest(ctx context.Context, query string) ([]models.CompanySuggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < s.minQuery {
		return []models.CompanySuggestion{}, nil
	}

	suggestions, err := s.provider.Search(ctx, query)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Str("query", query).
			Msg("Company search failed")
		return []models.CompanySuggestion{}, err
	}

	s.logger.Debug().
		Str("provider", s.provider.Name()).
		Str("query", query).
		Int("results", len(suggestions)).
		Msg("Company search completed")

	if suggestions == nil {
		suggestions = []models.CompanySuggestion{}
	}
	return suggestions, nil
}

// ParseTicker extracts the symbol from a suggestion label ("AAPL - Apple Inc.")
// or returns the trimmed query unchanged.
func ParseTicker(query string) string {
	query = strings.TrimSpace(query)
	if idx := strings.Index(query, " - "); idx >= 0 {
		return strings.TrimSpace(query[:idx])
	}
	return query
}
