// Package yahoo provides a client for the Yahoo Finance symbol search endpoint.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the Yahoo Finance query host.
	DefaultBaseURL = "https://query2.finance.yahoo.com"

	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 5 * time.Second

	// DefaultQuotesCount is the number of quotes requested per search.
	DefaultQuotesCount = 6

	// DefaultUserAgent is a desktop browser agent; the endpoint rejects bare clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	searchPath = "/v1/finance/search"
)

// Client queries Yahoo Finance search.
type Client struct {
	baseURL     string
	userAgent   string
	quotesCount int
	httpClient  *http.Client
	logger      arbor.ILogger
	limiter     *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithQuotesCount sets how many quotes a search asks for.
func WithQuotesCount(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.quotesCount = n
		}
	}
}

// WithRateLimit sets the request throttle. Values below 1 disable throttling.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond < 1 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a Yahoo Finance search client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		quotesCount: DefaultQuotesCount,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search returns the quotes matching query. Only exact-phrase matches are
// requested; news results are suppressed.
func (c *Client) Search(ctx context.Context, query string) ([]Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("yahoo search throttled: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", strconv.Itoa(c.quotesCount))
	params.Set("newsCount", "0")
	params.Set("enableFuzzyQuery", "false")
	params.Set("quotesQueryId", "tss_match_phrase_query")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("query", query).
			Msg("Yahoo search request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return result.Quotes, nil
}
