package search

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/eodhd"
	"github.com/ternarybob/finhealth/internal/yahoo"
)

// NewSearchService creates a search service based on configuration
// Supported providers:
//   - "yahoo": Yahoo Finance quote search (default, no key required)
//   - "eodhd": EODHD symbol search using the market data key
func NewSearchService(config *common.Config, eodhdClient *eodhd.Client, logger arbor.ILogger) *Service {
	provider := strings.ToLower(strings.TrimSpace(config.Search.Provider))

	switch provider {
	case "eodhd":
		logger.Info().
			Str("provider", "eodhd").
			Msg("Initializing EODHD company search")
		return NewService(NewEODHDProvider(eodhdClient, config.Search.QuotesCount), config.Search.MinQuery, logger)

	case "yahoo", "":
	default:
		logger.Warn().
			Str("provider", provider).
			Str("fallback", "yahoo").
			Msg("Unknown search provider, falling back to Yahoo Finance")
	}

	logger.Info().
		Str("provider", "yahoo").
		Msg("Initializing Yahoo Finance company search")

	opts := []yahoo.ClientOption{
		yahoo.WithLogger(logger),
		yahoo.WithQuotesCount(config.Search.QuotesCount),
		yahoo.WithHTTPClient(&http.Client{
			Timeout: common.ParseDuration(config.Search.Timeout, yahoo.DefaultTimeout),
		}),
	}
	if config.Search.BaseURL != "" {
		opts = append(opts, yahoo.WithBaseURL(config.Search.BaseURL))
	}

	return NewService(NewYahooProvider(yahoo.NewClient(opts...)), config.Search.MinQuery, logger)
}
