package scoring

import (
	"math"
	"time"

	"github.com/ternarybob/finhealth/internal/models"
)

// table builds a statement table with one column per value, most recent first.
func table(rows map[string][]float64) *models.StatementTable {
	periods := 0
	for _, values := range rows {
		if len(values) > periods {
			periods = len(values)
		}
	}

	dates := make([]time.Time, periods)
	for i := range dates {
		dates[i] = time.Date(2024-i, 12, 31, 0, 0, 0, 0, time.UTC)
	}

	t := models.NewStatementTable(dates)
	for name, values := range rows {
		for i, v := range values {
			t.Set(name, i, v)
		}
	}
	return t
}

// bars generates n daily bars alternating between two closes.
func bars(n int, low, high float64) []models.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.PriceBar, n)
	for i := range out {
		c := low
		if i%2 == 1 {
			c = high
		}
		out[i] = models.PriceBar{
			Date:     start.AddDate(0, 0, i),
			Open:     c,
			High:     c * 1.01,
			Low:      c * 0.99,
			Close:    c,
			AdjClose: c,
			Volume:   1000,
		}
	}
	return out
}

func healthyCompany() *models.CompanyData {
	return &models.CompanyData{
		Symbol: "HLTH",
		Info: models.CompanyInfo{
			Symbol:            "HLTH",
			MarketCap:         1500,
			SharesOutstanding: 100,
			CurrentPrice:      15,
			Currency:          "USD",
		},
		BalanceSheet: table(map[string][]float64{
			"Total Assets":                            {1000},
			"Current Assets":                          {400},
			"Current Liabilities":                     {200},
			"Retained Earnings":                       {300},
			"Total Liabilities Net Minority Interest": {500},
			"Total Equity":                            {500},
		}),
		IncomeStatement: table(map[string][]float64{
			"EBIT":          {150},
			"Total Revenue": {1200},
			"Net Income":    {100, 80},
		}),
		Prices: map[models.Lookback][]models.PriceBar{
			models.Lookback1Y: bars(252, 100, 101),
		},
	}
}

func distressedCompany() *models.CompanyData {
	return &models.CompanyData{
		Symbol: "DSTR",
		Info: models.CompanyInfo{
			Symbol:    "DSTR",
			MarketCap: 100,
		},
		BalanceSheet: table(map[string][]float64{
			"Total Assets":                            {1000},
			"Current Assets":                          {100},
			"Current Liabilities":                     {400},
			"Retained Earnings":                       {-500},
			"Total Liabilities Net Minority Interest": {1200},
		}),
		IncomeStatement: table(map[string][]float64{
			"EBIT":          {-50},
			"Total Revenue": {300},
			"Net Income":    {-200, -100},
		}),
	}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
