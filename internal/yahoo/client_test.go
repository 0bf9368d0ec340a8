package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finance/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "micro", q.Get("q"))
		assert.Equal(t, "6", q.Get("quotesCount"))
		assert.Equal(t, "0", q.Get("newsCount"))
		assert.Equal(t, "false", q.Get("enableFuzzyQuery"))
		assert.Equal(t, "tss_match_phrase_query", q.Get("quotesQueryId"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")

		w.Write([]byte(`{"quotes": [
			{"symbol": "MSFT", "shortname": "Microsoft Corporation", "exchange": "NMS", "quoteType": "EQUITY"},
			{"symbol": "MU", "longname": "Micron Technology, Inc.", "exchange": "NMS"},
			{"symbol": "MSTR"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithLogger(arbor.NewLogger()), WithRateLimit(0))
	quotes, err := client.Search(context.Background(), "micro")
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	assert.Equal(t, "Microsoft Corporation", quotes[0].DisplayName())
	assert.Equal(t, "Micron Technology, Inc.", quotes[1].DisplayName())
	assert.Equal(t, "Unknown Company", quotes[2].DisplayName())
}

func TestClient_SearchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithRateLimit(0))
	_, err := client.Search(context.Background(), "apple")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestQuote_DisplayNamePrefersShortName(t *testing.T) {
	q := Quote{ShortName: "Apple", LongName: "Apple Inc."}
	assert.Equal(t, "Apple", q.DisplayName())
}
