package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/finhealth/internal/models"
	"github.com/ternarybob/finhealth/internal/services/analysis"
	"github.com/ternarybob/finhealth/internal/services/scoring"
)

// mockAnalyzer implements Analyzer for testing
type mockAnalyzer struct {
	analyzeFunc func(ctx context.Context, query string) *analysis.Report
	batchFunc   func(ctx context.Context, tickers []string) ([]*analysis.Report, error)
}

func (m *mockAnalyzer) Analyze(ctx context.Context, query string) *analysis.Report {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, query)
	}
	return sampleReport(query)
}

func (m *mockAnalyzer) AnalyzeBatch(ctx context.Context, tickers []string) ([]*analysis.Report, error) {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, tickers)
	}
	reports := make([]*analysis.Report, len(tickers))
	for i, t := range tickers {
		reports[i] = sampleReport(t)
	}
	return reports, nil
}

// mockSearcher implements interfaces.CompanySearcher for testing
type mockSearcher struct {
	suggestFunc func(ctx context.Context, query string) ([]models.CompanySuggestion, error)
}

func (m *mockSearcher) Suggest(ctx context.Context, query string) ([]models.CompanySuggestion, error) {
	if m.suggestFunc != nil {
		return m.suggestFunc(ctx, query)
	}
	return []models.CompanySuggestion{}, nil
}

func ptr(v float64) *float64 {
	return &v
}

func sampleReport(symbol string) *analysis.Report {
	zStatus := scoring.ZoneForZScore(4.2)
	oStatus := scoring.RiskForProbability(0.12)
	mStatus := scoring.MertonStatus(0.02)

	return &analysis.Report{
		Query:  symbol,
		Symbol: symbol,
		Info: &models.CompanyInfo{
			Symbol:        symbol,
			LongName:      "Healthy Co",
			Sector:        "Technology",
			Industry:      "Software",
			Exchange:      "NASDAQ",
			Currency:      "USD",
			MarketCap:     1500000,
			RevenueGrowth: 0.125,
			ProfitMargins: 0.2,
			DebtToEquity:  35.5,
		},
		Scores: &scoring.Scores{
			ZScore: scoring.ZScoreResult{
				ScoreResult: scoring.ScoreResult{
					Score: ptr(4.2),
					Notes: scoring.Notes{
						Problematic: []string{},
						Substituted: []string{"Retained Earnings (calculated from Total Equity - Capital Stock)"},
					},
				},
				Status: &zStatus,
			},
			OScore: scoring.OScoreResult{
				ScoreResult: scoring.ScoreResult{
					Score: ptr(-2),
					Notes: scoring.Notes{Problematic: []string{}, Substituted: []string{}},
				},
				Probability: ptr(0.12),
				Status:      &oStatus,
			},
			Merton: scoring.MertonResult{
				ScoreResult: scoring.ScoreResult{
					Score: ptr(0.02),
					Notes: scoring.Notes{Problematic: []string{}, Substituted: []string{}},
				},
				DistanceToDefault: ptr(2.05),
				Status:            &mStatus,
			},
		},
		GeneratedAt: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
	}
}

func failedReport(symbol string) *analysis.Report {
	return &analysis.Report{
		Query:  symbol,
		Symbol: symbol,
		Error:  "Error analyzing company: " + errors.New("company not found").Error(),
		Hints:  analysis.TroubleshootingHints,
	}
}
