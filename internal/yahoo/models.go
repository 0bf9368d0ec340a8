package yahoo

import "fmt"

// SearchResponse is the body of /v1/finance/search.
type SearchResponse struct {
	Quotes []Quote `json:"quotes"`
}

// Quote is one search match.
type Quote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
	Exchange  string `json:"exchange"`
	ExchDisp  string `json:"exchDisp"`
	QuoteType string `json:"quoteType"`
	TypeDisp  string `json:"typeDisp"`
}

// DisplayName returns the short name, then the long name, then "Unknown Company".
func (q Quote) DisplayName() string {
	switch {
	case q.ShortName != "":
		return q.ShortName
	case q.LongName != "":
		return q.LongName
	default:
		return "Unknown Company"
	}
}

// APIError represents a non-200 response from Yahoo Finance.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo Finance API error: %s (status: %d)", e.Message, e.StatusCode)
}
