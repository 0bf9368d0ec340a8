package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/eodhd"
	"github.com/ternarybob/finhealth/internal/models"
)

var testNow = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

const fundamentalsJSON = `{
	"General": {"Code": "ACME", "Name": "Acme Corp", "Exchange": "NYSE", "CurrencyCode": "USD", "Sector": "Industrials", "Industry": "Machinery", "WebURL": "https://acme.example"},
	"Highlights": {"MarketCapitalization": 1500000, "ProfitMargin": 0.12, "QuarterlyRevenueGrowthYOY": 0.04},
	"SharesStats": {"SharesOutstanding": 15000, "SharesFloat": 14000},
	"Financials": {
		"Balance_Sheet": {
			"currency_symbol": "USD",
			"yearly": {
				"2024-12-31": {"date": "2024-12-31", "totalAssets": "1000000.00", "totalLiab": "400000", "totalStockholderEquity": "600000", "shortLongTermDebtTotal": "300000", "retainedEarnings": null},
				"2023-12-31": {"date": "2023-12-31", "totalAssets": 900000, "totalLiab": "380000"}
			}
		},
		"Income_Statement": {
			"currency_symbol": "USD",
			"yearly": {
				"2024-12-31": {"date": "2024-12-31", "totalRevenue": "1200000", "netIncome": "90000"},
				"2023-12-31": {"date": "2023-12-31", "totalRevenue": "1100000", "netIncome": "80000"}
			}
		}
	}
}`

type fakeServer struct {
	fundamentalsCalls int
	eodCalls          int
	eodStatus         int
	fundamentalStatus int
}

func (f *fakeServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/fundamentals/"):
			f.fundamentalsCalls++
			if f.fundamentalStatus != 0 {
				w.WriteHeader(f.fundamentalStatus)
				w.Write([]byte("Ticker Not Found."))
				return
			}
			w.Write([]byte(fundamentalsJSON))
		case strings.HasPrefix(r.URL.Path, "/eod/"):
			f.eodCalls++
			if f.eodStatus != 0 {
				w.WriteHeader(f.eodStatus)
				return
			}
			assert.Equal(t, "2024-06-30", r.URL.Query().Get("from"))
			var bars []map[string]interface{}
			day := testNow.AddDate(-1, 0, 1)
			for i := 0; !day.After(testNow); i++ {
				bars = append(bars, map[string]interface{}{
					"date":           day.Format("2006-01-02"),
					"open":           100,
					"high":           101,
					"low":            99,
					"close":          100 + float64(i%2),
					"adjusted_close": 100 + float64(i%2),
					"volume":         1000,
				})
				day = day.AddDate(0, 0, 1)
			}
			json.NewEncoder(w).Encode(bars)
		default:
			http.NotFound(w, r)
		}
	}
}

func newTestService(t *testing.T, fake *fakeServer, apiKey string) *Service {
	t.Helper()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client := eodhd.NewClient(apiKey, eodhd.WithBaseURL(server.URL), eodhd.WithRateLimit(0))
	s := NewService(client, nil, "US", arbor.NewLogger())
	s.now = func() time.Time { return testNow }
	return s
}

func TestFetchCompany(t *testing.T) {
	fake := &fakeServer{}
	s := newTestService(t, fake, "key")

	data, err := s.FetchCompany(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, "ACME.US", data.Symbol)
	assert.Equal(t, "Acme Corp", data.Info.LongName)
	assert.Equal(t, "Industrials", data.Info.Sector)
	assert.Equal(t, 1500000.0, data.Info.MarketCap)
	assert.Equal(t, 15000.0, data.Info.SharesOutstanding)
	assert.Equal(t, 14000.0, data.Info.FloatShares)
	assert.InDelta(t, 50.0, data.Info.DebtToEquity, 1e-9)
	assert.Empty(t, data.PriceError)

	require.Equal(t, 2, data.BalanceSheet.Len())
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), data.BalanceSheet.Periods[0])

	v, ok := data.BalanceSheet.Value("totalAssets", 0)
	require.True(t, ok)
	assert.Equal(t, 1000000.0, v)

	v, ok = data.BalanceSheet.Value("totalAssets", 1)
	require.True(t, ok)
	assert.Equal(t, 900000.0, v)

	// null values and date strings never become rows
	assert.False(t, data.BalanceSheet.Has("retainedEarnings"))
	assert.False(t, data.BalanceSheet.Has("date"))

	ni, ok := data.IncomeStatement.Value("netIncome", 1)
	require.True(t, ok)
	assert.Equal(t, 80000.0, ni)

	year := data.PriceHistory(models.Lookback1Y)
	half := data.PriceHistory(models.Lookback6M)
	quarter := data.PriceHistory(models.Lookback3M)
	assert.Greater(t, len(year), len(half))
	assert.Greater(t, len(half), len(quarter))
	assert.False(t, quarter[0].Date.Before(testNow.AddDate(0, -3, 0)))
	assert.Equal(t, year[len(year)-1].Close, data.Info.CurrentPrice)
	assert.Equal(t, 1, fake.eodCalls)
}

func TestFetchCompany_TickerForms(t *testing.T) {
	fake := &fakeServer{}
	s := newTestService(t, fake, "key")

	for _, ticker := range []string{"ACME.AX", "ASX:ACME", "ACME.AU"} {
		data, err := s.FetchCompany(context.Background(), ticker)
		require.NoError(t, err, ticker)
		assert.Equal(t, "ACME.AU", data.Symbol, ticker)
	}
}

func TestFetchCompany_NotFound(t *testing.T) {
	fake := &fakeServer{fundamentalStatus: http.StatusNotFound}
	s := newTestService(t, fake, "key")

	_, err := s.FetchCompany(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFetchCompany_ServerError(t *testing.T) {
	fake := &fakeServer{fundamentalStatus: http.StatusInternalServerError}
	s := newTestService(t, fake, "key")

	_, err := s.FetchCompany(context.Background(), "ACME")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestFetchCompany_PriceErrorIsRecorded(t *testing.T) {
	fake := &fakeServer{eodStatus: http.StatusBadGateway}
	s := newTestService(t, fake, "key")

	data, err := s.FetchCompany(context.Background(), "ACME")
	require.NoError(t, err)
	assert.NotEmpty(t, data.PriceError)
	assert.Empty(t, data.PriceHistory(models.Lookback1Y))
	assert.Zero(t, data.Info.CurrentPrice)
}

func TestFetchCompany_NoAPIKey(t *testing.T) {
	fake := &fakeServer{}
	s := newTestService(t, fake, "")

	_, err := s.FetchCompany(context.Background(), "ACME")
	assert.ErrorIs(t, err, ErrNoAPIKey)
	assert.Zero(t, fake.fundamentalsCalls)
}

func TestFetchCompany_EmptyTicker(t *testing.T) {
	s := newTestService(t, &fakeServer{}, "key")

	_, err := s.FetchCompany(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTicker)
}

func TestStatementFromYearly_Empty(t *testing.T) {
	assert.Equal(t, 0, StatementFromYearly(nil).Len())
	assert.Equal(t, 0, StatementFromYearly(&eodhd.FinancialStatement{}).Len())
}

func TestStatementFromYearly_SkipsBadPeriods(t *testing.T) {
	table := StatementFromYearly(&eodhd.FinancialStatement{
		Yearly: map[string]map[string]interface{}{
			"0000-00-00": {"totalAssets": "1"},
			"2022-06-30": {"totalAssets": "5"},
		},
	})
	require.Equal(t, 1, table.Len())
	v, _ := table.Value("totalAssets", 0)
	assert.Equal(t, 5.0, v)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  interface{}
		want float64
		ok   bool
	}{
		{raw: 12.5, want: 12.5, ok: true},
		{raw: "1e6", want: 1e6, ok: true},
		{raw: " -42.00 ", want: -42, ok: true},
		{raw: 7, want: 7, ok: true},
		{raw: "None", ok: false},
		{raw: "", ok: false},
		{raw: nil, ok: false},
		{raw: "2024-12-31", ok: false},
		{raw: true, ok: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.raw), func(t *testing.T) {
			got, ok := ParseValue(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.False(t, math.IsNaN(got))
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
