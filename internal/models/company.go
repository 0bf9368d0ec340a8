package models

import "time"

// Lookback is a price history window requested from the market data provider.
type Lookback string

const (
	Lookback1Y Lookback = "1y"
	Lookback6M Lookback = "6mo"
	Lookback3M Lookback = "3mo"
)

// Lookbacks lists the price windows in the order they are tried.
var Lookbacks = []Lookback{Lookback1Y, Lookback6M, Lookback3M}

// Since returns the first date included in the lookback ending at asOf.
func (l Lookback) Since(asOf time.Time) time.Time {
	switch l {
	case Lookback6M:
		return asOf.AddDate(0, -6, 0)
	case Lookback3M:
		return asOf.AddDate(0, -3, 0)
	default:
		return asOf.AddDate(-1, 0, 0)
	}
}

// PriceBar is one daily OHLCV observation.
type PriceBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   int64     `json:"volume"`
}

// CompanyInfo holds descriptive fields and market quotes for a company.
// Numeric fields are zero when the provider did not report them.
type CompanyInfo struct {
	Symbol            string  `json:"symbol"`
	LongName          string  `json:"long_name"`
	Sector            string  `json:"sector"`
	Industry          string  `json:"industry"`
	Exchange          string  `json:"exchange"`
	Website           string  `json:"website"`
	Summary           string  `json:"summary"`
	Currency          string  `json:"currency"`
	MarketCap         float64 `json:"market_cap"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	FloatShares       float64 `json:"float_shares"`
	CurrentPrice      float64 `json:"current_price"`
	RevenueGrowth     float64 `json:"revenue_growth"`
	ProfitMargins     float64 `json:"profit_margins"`
	DebtToEquity      float64 `json:"debt_to_equity"`
}

// CompanyData is everything fetched for one ticker before scoring.
type CompanyData struct {
	Symbol          string                  `json:"symbol"`
	Info            CompanyInfo             `json:"info"`
	BalanceSheet    *StatementTable         `json:"balance_sheet"`
	IncomeStatement *StatementTable         `json:"income_statement"`
	Prices          map[Lookback][]PriceBar `json:"prices"`
	PriceError      string                  `json:"price_error,omitempty"`
	FetchedAt       time.Time               `json:"fetched_at"`
}

// PriceHistory returns the bars fetched for a lookback, oldest first.
func (d *CompanyData) PriceHistory(l Lookback) []PriceBar {
	if d == nil || d.Prices == nil {
		return nil
	}
	return d.Prices[l]
}

// CompanySuggestion is one candidate returned by company search.
type CompanySuggestion struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// Label formats the suggestion the way the search box shows it ("SYM - Name").
func (s CompanySuggestion) Label() string {
	return s.Symbol + " - " + s.Name
}
