// Package eodhd provides a client for the EODHD (End of Day Historical Data) API.
package eodhd

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// QueryOption represents an optional parameter for API queries.
type QueryOption func(*queryParams)

type queryParams struct {
	From   time.Time
	To     time.Time
	Period string // d, w, m
	Order  string // a (asc), d (desc)
	Limit  int
}

func (p *queryParams) values() url.Values {
	v := url.Values{}
	if !p.From.IsZero() {
		v.Set("from", p.From.Format(dateLayout))
	}
	if !p.To.IsZero() {
		v.Set("to", p.To.Format(dateLayout))
	}
	if p.Period != "" {
		v.Set("period", p.Period)
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v
}

// WithDateRange sets the date range for the query.
func WithDateRange(from, to time.Time) QueryOption {
	return func(p *queryParams) {
		p.From = from
		p.To = to
	}
}

// WithOrder sets the order (a=ascending, d=descending).
func WithOrder(order string) QueryOption {
	return func(p *queryParams) {
		p.Order = order
	}
}

// WithLimit sets the maximum number of results.
func WithLimit(limit int) QueryOption {
	return func(p *queryParams) {
		p.Limit = limit
	}
}

// APIError represents a non-200 response from the EODHD API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// NotFound reports whether the API rejected the symbol as unknown.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// RateLimitError is returned when the client-side throttle cannot admit a request
// before the context ends.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("EODHD rate limit exceeded, retry after %v", e.RetryAfter)
}
