// Package market assembles company data for scoring from the EODHD
// fundamentals and end-of-day price endpoints.
package market

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/eodhd"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/models"
	"github.com/ternarybob/finhealth/internal/services/cache"
)

var (
	// ErrNotFound is returned when the provider has no fundamentals for a ticker.
	ErrNotFound = errors.New("company not found")

	// ErrNoAPIKey is returned when no EODHD API key is configured.
	ErrNoAPIKey = errors.New("EODHD API key is not configured")

	// ErrEmptyTicker is returned for blank input.
	ErrEmptyTicker = errors.New("ticker is empty")
)

const dateLayout = "2006-01-02"

// EODHDClient is the subset of the EODHD client used to fetch company data.
type EODHDClient interface {
	HasAPIKey() bool
	GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error)
	GetEOD(ctx context.Context, symbol string, opts ...eodhd.QueryOption) (eodhd.EODResponse, error)
}

// Service implements interfaces.CompanyDataProvider.
type Service struct {
	client          EODHDClient
	cache           *cache.Service
	defaultExchange string
	logger          arbor.ILogger
	now             func() time.Time
}

var _ interfaces.CompanyDataProvider = (*Service)(nil)

// NewService creates a market data service. cacheService may be nil.
func NewService(client EODHDClient, cacheService *cache.Service, defaultExchange string, logger arbor.ILogger) *Service {
	if defaultExchange == "" {
		defaultExchange = "US"
	}
	return &Service{
		client:          client,
		cache:           cacheService,
		defaultExchange: defaultExchange,
		logger:          logger,
		now:             time.Now,
	}
}

// FetchCompany returns statements, company info and one year of daily prices for a ticker.
func (s *Service) FetchCompany(ctx context.Context, ticker string) (*models.CompanyData, error) {
	parsed := common.ParseTicker(ticker, s.defaultExchange)
	if parsed.IsZero() {
		return nil, ErrEmptyTicker
	}
	symbol := parsed.EODHDSymbol()

	if data, ok := s.cache.Lookup(ctx, symbol); ok {
		return data, nil
	}

	if !s.client.HasAPIKey() {
		return nil, ErrNoAPIKey
	}

	fundamentals, err := s.client.GetFundamentals(ctx, symbol)
	if err != nil {
		var apiErr *eodhd.APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
		}
		return nil, fmt.Errorf("failed to fetch fundamentals for %s: %w", symbol, err)
	}
	if fundamentals == nil || (fundamentals.General == nil && fundamentals.Financials == nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}

	now := s.now()
	data := &models.CompanyData{
		Symbol:    symbol,
		Prices:    make(map[models.Lookback][]models.PriceBar),
		FetchedAt: now,
	}

	if fundamentals.Financials != nil {
		data.BalanceSheet = StatementFromYearly(fundamentals.Financials.BalanceSheet)
		data.IncomeStatement = StatementFromYearly(fundamentals.Financials.IncomeStatement)
	}

	s.fetchPrices(ctx, symbol, now, data)
	data.Info = buildInfo(symbol, fundamentals, data)

	s.logger.Info().
		Str("symbol", symbol).
		Int("balance_periods", data.BalanceSheet.Len()).
		Int("income_periods", data.IncomeStatement.Len()).
		Int("price_bars", len(data.PriceHistory(models.Lookback1Y))).
		Msg("Fetched company data")

	// A failed price fetch is not cached so the next request retries it
	if data.PriceError == "" {
		s.cache.Store(ctx, data)
	}

	return data, nil
}

// fetchPrices loads the longest lookback once and slices the shorter windows
// from it. Failures are recorded on data rather than returned.
func (s *Service) fetchPrices(ctx context.Context, symbol string, now time.Time, data *models.CompanyData) {
	longest := models.Lookbacks[0]
	bars, err := s.client.GetEOD(ctx, symbol, eodhd.WithDateRange(longest.Since(now), now), eodhd.WithOrder("a"))
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to fetch price history")
		data.PriceError = err.Error()
		return
	}

	all := make([]models.PriceBar, 0, len(bars))
	for _, b := range bars {
		if b.Date.IsZero() {
			continue
		}
		all = append(all, models.PriceBar{
			Date:     b.Date,
			Open:     b.Open,
			High:     b.High,
			Low:      b.Low,
			Close:    b.Close,
			AdjClose: b.AdjustedClose,
			Volume:   b.Volume,
		})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })

	for _, lookback := range models.Lookbacks {
		since := lookback.Since(now)
		idx := sort.Search(len(all), func(i int) bool { return !all[i].Date.Before(since) })
		data.Prices[lookback] = all[idx:]
	}
}

func buildInfo(symbol string, f *eodhd.FundamentalsResponse, data *models.CompanyData) models.CompanyInfo {
	info := models.CompanyInfo{Symbol: symbol}

	if g := f.General; g != nil {
		info.LongName = g.Name
		info.Sector = g.Sector
		info.Industry = g.Industry
		info.Exchange = g.Exchange
		info.Website = g.WebURL
		info.Summary = g.Description
		info.Currency = g.CurrencyCode
	}
	if h := f.Highlights; h != nil {
		info.MarketCap = h.MarketCapitalization
		info.ProfitMargins = h.ProfitMargin
		info.RevenueGrowth = h.QuarterlyRevenueGrowthYOY
	}
	if st := f.SharesStats; st != nil {
		info.SharesOutstanding = st.SharesOutstanding
		info.FloatShares = st.SharesFloat
	}

	if bars := data.PriceHistory(models.Lookbacks[0]); len(bars) > 0 {
		info.CurrentPrice = bars[len(bars)-1].Close
	}

	debt, okDebt := latest(data.BalanceSheet, "shortLongTermDebtTotal")
	equity, okEquity := latest(data.BalanceSheet, "totalStockholderEquity")
	if okDebt && okEquity && equity != 0 {
		info.DebtToEquity = debt / equity * 100
	}

	return info
}

func latest(table *models.StatementTable, name string) (float64, bool) {
	v, ok := table.Value(name, 0)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// StatementFromYearly converts EODHD yearly statements into a table, most recent period first.
// Periods whose key is not a date are skipped, as are values that are not numeric.
func StatementFromYearly(statement *eodhd.FinancialStatement) *models.StatementTable {
	if statement == nil || len(statement.Yearly) == 0 {
		return models.NewStatementTable(nil)
	}

	keys := make([]string, 0, len(statement.Yearly))
	periods := make([]time.Time, 0, len(statement.Yearly))
	for key := range statement.Yearly {
		period, err := time.Parse(dateLayout, key)
		if err != nil {
			continue
		}
		keys = append(keys, key)
		periods = append(periods, period)
	}

	table := models.NewStatementTable(periods)
	index := make(map[string]int, len(table.Periods))
	for i, p := range table.Periods {
		index[p.Format(dateLayout)] = i
	}

	for _, key := range keys {
		i := index[key]
		for name, raw := range statement.Yearly[key] {
			if v, ok := ParseValue(raw); ok {
				table.Set(name, i, v)
			}
		}
	}

	return table
}

// ParseValue reads a statement value that may be a JSON number, a numeric
// string or null.
func ParseValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		v = strings.TrimSpace(v)
		if v == "" || v == "None" || v == "null" {
			return 0, false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
