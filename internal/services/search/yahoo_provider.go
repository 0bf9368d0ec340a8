package search

import (
	"context"

	"github.com/ternarybob/finhealth/internal/models"
	"github.com/ternarybob/finhealth/internal/yahoo"
)

// YahooClient is the subset of the Yahoo Finance client used for search.
type YahooClient interface {
	Search(ctx context.Context, query string) ([]yahoo.Quote, error)
}

// YahooProvider searches the Yahoo Finance quote index.
type YahooProvider struct {
	client YahooClient
}

// NewYahooProvider creates a Yahoo Finance search provider.
func NewYahooProvider(client YahooClient) *YahooProvider {
	return &YahooProvider{client: client}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// Search maps Yahoo quotes to suggestions, skipping quotes without a symbol.
func (p *YahooProvider) Search(ctx context.Context, query string) ([]models.CompanySuggestion, error) {
	quotes, err := p.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.CompanySuggestion, 0, len(quotes))
	for _, q := range quotes {
		if q.Symbol == "" {
			continue
		}
		suggestions = append(suggestions, models.CompanySuggestion{
			Symbol:   q.Symbol,
			Name:     q.DisplayName(),
			Exchange: q.Exchange,
			Type:     q.QuoteType,
		})
	}
	return suggestions, nil
}
