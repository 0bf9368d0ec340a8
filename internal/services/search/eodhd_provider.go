package search

import (
	"context"
	"errors"

	"github.com/ternarybob/finhealth/internal/eodhd"
	"github.com/ternarybob/finhealth/internal/models"
)

// ErrNoAPIKey is returned by the EODHD provider when no key is configured.
var ErrNoAPIKey = errors.New("EODHD API key is not configured")

// EODHDClient is the subset of the EODHD client used for search.
type EODHDClient interface {
	HasAPIKey() bool
	Search(ctx context.Context, query string, opts ...eodhd.QueryOption) (eodhd.SearchResponse, error)
}

// EODHDProvider searches the EODHD symbol index. Symbols are returned in
// CODE.EXCHANGE form so they resolve directly against the fundamentals API.
type EODHDProvider struct {
	client EODHDClient
	limit  int
}

// NewEODHDProvider creates an EODHD search provider returning at most limit results.
func NewEODHDProvider(client EODHDClient, limit int) *EODHDProvider {
	return &EODHDProvider{client: client, limit: limit}
}

func (p *EODHDProvider) Name() string { return "eodhd" }

func (p *EODHDProvider) Search(ctx context.Context, query string) ([]models.CompanySuggestion, error) {
	if !p.client.HasAPIKey() {
		return nil, ErrNoAPIKey
	}

	results, err := p.client.Search(ctx, query, eodhd.WithLimit(p.limit))
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.CompanySuggestion, 0, len(results))
	for _, r := range results {
		if r.Code == "" {
			continue
		}
		name := r.Name
		if name == "" {
			name = "Unknown Company"
		}
		suggestions = append(suggestions, models.CompanySuggestion{
			Symbol:   r.Symbol(),
			Name:     name,
			Exchange: r.Exchange,
			Type:     r.Type,
		})
	}
	return suggestions, nil
}
