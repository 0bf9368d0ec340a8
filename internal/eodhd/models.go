package eodhd

import (
	"time"
)

// EODData is one day of price data.
type EODData struct {
	Date          time.Time `json:"-"`
	DateStr       string    `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	AdjustedClose float64   `json:"adjusted_close"`
	Volume        int64     `json:"volume"`
}

// EODResponse is a slice of EODData.
type EODResponse []EODData

// FundamentalsResponse is the subset of /fundamentals used for default-risk scoring.
type FundamentalsResponse struct {
	General     *GeneralInfo `json:"General"`
	Highlights  *Highlights  `json:"Highlights"`
	SharesStats *SharesStats `json:"SharesStats"`
	Financials  *Financials  `json:"Financials"`
}

// GeneralInfo contains general company information.
type GeneralInfo struct {
	Code         string `json:"Code"`
	Type         string `json:"Type"`
	Name         string `json:"Name"`
	Exchange     string `json:"Exchange"`
	CurrencyCode string `json:"CurrencyCode"`
	CountryName  string `json:"CountryName"`
	Sector       string `json:"Sector"`
	Industry     string `json:"Industry"`
	Description  string `json:"Description"`
	WebURL       string `json:"WebURL"`
	IsDelisted   bool   `json:"IsDelisted"`
}

// Highlights contains key financial highlights.
type Highlights struct {
	MarketCapitalization      float64 `json:"MarketCapitalization"`
	EBITDA                    float64 `json:"EBITDA"`
	ProfitMargin              float64 `json:"ProfitMargin"`
	RevenueTTM                float64 `json:"RevenueTTM"`
	QuarterlyRevenueGrowthYOY float64 `json:"QuarterlyRevenueGrowthYOY"`
	MostRecentQuarter         string  `json:"MostRecentQuarter"`
}

// SharesStats holds share counts.
type SharesStats struct {
	SharesOutstanding float64 `json:"SharesOutstanding"`
	SharesFloat       float64 `json:"SharesFloat"`
}

// Financials contains financial statements.
type Financials struct {
	BalanceSheet    *FinancialStatement `json:"Balance_Sheet"`
	IncomeStatement *FinancialStatement `json:"Income_Statement"`
}

// FinancialStatement holds quarterly and yearly statement values keyed by
// period date ("2024-09-30") and then by metric name. Values arrive as
// strings, numbers or null.
type FinancialStatement struct {
	Currency  string                            `json:"currency_symbol"`
	Quarterly map[string]map[string]interface{} `json:"quarterly"`
	Yearly    map[string]map[string]interface{} `json:"yearly"`
}

// SearchResult is one match from /search.
type SearchResult struct {
	Code          string  `json:"Code"`
	Exchange      string  `json:"Exchange"`
	Name          string  `json:"Name"`
	Type          string  `json:"Type"`
	Country       string  `json:"Country"`
	Currency      string  `json:"Currency"`
	ISIN          string  `json:"ISIN"`
	PreviousClose float64 `json:"previousClose"`
}

// Symbol returns the TICKER.EXCHANGE form accepted by the price and fundamentals endpoints.
func (r SearchResult) Symbol() string {
	if r.Exchange == "" {
		return r.Code
	}
	return r.Code + "." + r.Exchange
}

// SearchResponse is a slice of SearchResult.
type SearchResponse []SearchResult
