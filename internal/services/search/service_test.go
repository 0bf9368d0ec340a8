package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/eodhd"
	"github.com/ternarybob/finhealth/internal/models"
	"github.com/ternarybob/finhealth/internal/yahoo"
)

type stubProvider struct {
	calls   int
	results []models.CompanySuggestion
	err     error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Search(ctx context.Context, query string) ([]models.CompanySuggestion, error) {
	p.calls++
	return p.results, p.err
}

func TestSuggest_ShortQuery(t *testing.T) {
	provider := &stubProvider{}
	s := NewService(provider, 2, arbor.NewLogger())

	for _, q := range []string{"", "a", "  a  "} {
		got, err := s.Suggest(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
	assert.Zero(t, provider.calls)
}

func TestSuggest_ProviderResults(t *testing.T) {
	provider := &stubProvider{results: []models.CompanySuggestion{{Symbol: "AAPL", Name: "Apple Inc."}}}
	s := NewService(provider, 0, arbor.NewLogger())

	got, err := s.Suggest(context.Background(), "ap")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "AAPL - Apple Inc.", got[0].Label())
}

func TestSuggest_ProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("timeout")}
	s := NewService(provider, 2, arbor.NewLogger())

	got, err := s.Suggest(context.Background(), "apple")
	assert.Error(t, err)
	assert.Empty(t, got)
}

func TestParseTicker(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "suggestion label", query: "AAPL - Apple Inc.", want: "AAPL"},
		{name: "name containing dash", query: "BRK-B - Berkshire Hathaway - Class B", want: "BRK-B"},
		{name: "bare symbol", query: "  msft ", want: "msft"},
		{name: "hyphenated symbol", query: "BRK-B", want: "BRK-B"},
		{name: "empty", query: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTicker(tt.query))
		})
	}
}

func TestYahooProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"quotes": []map[string]interface{}{
				{"symbol": "AAPL", "shortname": "Apple Inc.", "exchange": "NMS", "quoteType": "EQUITY"},
				{"symbol": "APLE", "longname": "Apple Hospitality REIT", "exchange": "NYQ", "quoteType": "EQUITY"},
				{"symbol": "XYZ", "exchange": "NYQ"},
				{"shortname": "No symbol"},
			},
		})
	}))
	t.Cleanup(server.Close)

	provider := NewYahooProvider(yahoo.NewClient(yahoo.WithBaseURL(server.URL), yahoo.WithRateLimit(0)))
	got, err := provider.Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, models.CompanySuggestion{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NMS", Type: "EQUITY"}, got[0])
	assert.Equal(t, "Apple Hospitality REIT", got[1].Name)
	assert.Equal(t, "Unknown Company", got[2].Name)
}

func TestEODHDProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/bhp", r.URL.Path)
		assert.Equal(t, "6", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"Code": "BHP", "Exchange": "AU", "Name": "BHP Group Ltd", "Type": "Common Stock"},
			{"Code": "BHP", "Exchange": "US", "Name": "", "Type": "Common Stock"},
		})
	}))
	t.Cleanup(server.Close)

	client := eodhd.NewClient("key", eodhd.WithBaseURL(server.URL), eodhd.WithRateLimit(0))
	got, err := NewEODHDProvider(client, 6).Search(context.Background(), "bhp")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "BHP.AU", got[0].Symbol)
	assert.Equal(t, "Unknown Company", got[1].Name)
}

func TestEODHDProvider_NoAPIKey(t *testing.T) {
	client := eodhd.NewClient("")
	_, err := NewEODHDProvider(client, 6).Search(context.Background(), "bhp")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNewSearchService_SelectsProvider(t *testing.T) {
	config := common.NewDefaultConfig()
	logger := arbor.NewLogger()

	s := NewSearchService(config, eodhd.NewClient(""), logger)
	assert.Equal(t, "yahoo", s.provider.Name())

	config.Search.Provider = "EODHD"
	s = NewSearchService(config, eodhd.NewClient(""), logger)
	assert.Equal(t, "eodhd", s.provider.Name())

	config.Search.Provider = "bing"
	s = NewSearchService(config, eodhd.NewClient(""), logger)
	assert.Equal(t, "yahoo", s.provider.Name())
}
