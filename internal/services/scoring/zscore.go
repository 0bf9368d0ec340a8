package scoring

import (
	"fmt"

	"github.com/ternarybob/finhealth/internal/models"
)

// Altman Z-Score coefficients (public manufacturing model)
const (
	zWeightWorkingCapital   = 1.2
	zWeightRetainedEarnings = 1.4
	zWeightEBIT             = 3.3
	zWeightMarketValue      = 0.6
	zWeightSales            = 1.0
)

// CalculateZScore computes the Altman Z-Score:
//
//	Z = 1.2·WC/TA + 1.4·RE/TA + 3.3·EBIT/TA + 0.6·MV/TL + 1.0·Sales/TA
//
// Total assets are required; every other input degrades to zero with a note.
func CalculateZScore(data *models.CompanyData) (result ZScoreResult) {
	result = ZScoreResult{ScoreResult: newScoreResult()}
	defer func() {
		if r := recover(); r != nil {
			result.Score = nil
			result.Components = nil
			result.Status = nil
			result.Problem(fmt.Sprintf("Calculation Error: %v", r))
		}
	}()

	if data == nil {
		result.Problem("Company data")
		return result
	}

	balance := data.BalanceSheet
	income := data.IncomeStatement
	info := data.Info
	n := &result.Notes

	totalAssets, ok := Chain{
		Label: "Total Assets",
		Strategies: []Strategy{
			FromTable(balance, FieldTotalAssets),
			Derived("Total Assets (calculated from Current + Non-Current Assets)", func(*Notes) float64 {
				return Get(balance, FieldCurrentAssets) + Get(balance, FieldNonCurrentAssets)
			}),
		},
	}.Resolve(n)
	if !ok {
		return result
	}

	workingCapital := Get(balance, FieldCurrentAssets) - Get(balance, FieldCurrentLiabilities)

	retainedEarnings, _ := Chain{
		Label: "Retained Earnings",
		Strategies: []Strategy{
			FromTable(balance, FieldRetainedEarnings),
			Derived("Retained Earnings (calculated from Total Equity - Capital Stock)", func(*Notes) float64 {
				return Get(balance, FieldTotalEquity) - Get(balance, FieldCapitalStock)
			}),
		},
	}.Resolve(n)

	ebit, _ := Chain{
		Label: "EBIT",
		Strategies: []Strategy{
			FromTable(income, FieldEBIT),
			Derived("EBIT (calculated from EBITDA - Depreciation)", func(*Notes) float64 {
				return Get(income, FieldEBITDA) - Get(income, FieldDepreciation)
			}),
		},
	}.Resolve(n)

	marketValue, _ := Chain{
		Label: "Market Value",
		Strategies: []Strategy{
			FromValue(info.MarketCap),
			Derived("Market Value (calculated from Shares * Price)", func(*Notes) float64 {
				return info.SharesOutstanding * info.CurrentPrice
			}),
		},
	}.Resolve(n)

	totalLiabilities := Get(balance, FieldTotalLiabilities)

	sales, _ := Chain{
		Label:      FieldRevenue.Label,
		Strategies: []Strategy{FromTable(income, FieldRevenue)},
	}.Resolve(n)

	components := ZScoreComponents{
		WorkingCapitalToAssets:   workingCapital / totalAssets,
		RetainedEarningsToAssets: retainedEarnings / totalAssets,
		EBITToAssets:             ebit / totalAssets,
		SalesToAssets:            sales / totalAssets,
	}
	if !IsProblematic(totalLiabilities) {
		components.MarketValueToLiabilities = marketValue / totalLiabilities
	}

	z := zWeightWorkingCapital*components.WorkingCapitalToAssets +
		zWeightRetainedEarnings*components.RetainedEarningsToAssets +
		zWeightEBIT*components.EBITToAssets +
		zWeightMarketValue*components.MarketValueToLiabilities +
		zWeightSales*components.SalesToAssets

	status := ZoneForZScore(z)
	result.Score = floatPtr(z)
	result.Components = &components
	result.Status = &status
	return result
}
