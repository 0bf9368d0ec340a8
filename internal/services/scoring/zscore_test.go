package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/finhealth/internal/models"
)

func TestCalculateZScore(t *testing.T) {
	tests := []struct {
		name      string
		data      *models.CompanyData
		wantScore float64
		wantZone  string
	}{
		{
			name:      "healthy company in safe zone",
			data:      healthyCompany(),
			wantScore: 4.155,
			wantZone:  "Safe Zone",
		},
		{
			name:      "distressed company",
			data:      distressedCompany(),
			wantScore: -0.875,
			wantZone:  "Distress Zone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateZScore(tt.data)
			require.NotNil(t, result.Score)
			assert.InDelta(t, tt.wantScore, *result.Score, 1e-9)
			require.NotNil(t, result.Status)
			assert.Equal(t, tt.wantZone, result.Status.Label)
			assert.Empty(t, result.Problematic)
			assert.Empty(t, result.Substituted)
		})
	}
}

func TestCalculateZScore_Components(t *testing.T) {
	result := CalculateZScore(healthyCompany())
	require.NotNil(t, result.Components)

	c := result.Components
	assert.InDelta(t, 0.2, c.WorkingCapitalToAssets, 1e-12)
	assert.InDelta(t, 0.3, c.RetainedEarningsToAssets, 1e-12)
	assert.InDelta(t, 0.15, c.EBITToAssets, 1e-12)
	assert.InDelta(t, 3.0, c.MarketValueToLiabilities, 1e-12)
	assert.InDelta(t, 1.2, c.SalesToAssets, 1e-12)
}

func TestCalculateZScore_Fallbacks(t *testing.T) {
	data := healthyCompany()
	data.Info.MarketCap = 0
	data.BalanceSheet = table(map[string][]float64{
		"Current Assets":                          {400},
		"Non Current Assets":                      {600},
		"Current Liabilities":                     {200},
		"Total Equity":                            {500},
		"Capital Stock":                           {200},
		"Total Liabilities Net Minority Interest": {500},
	})
	data.IncomeStatement = table(map[string][]float64{
		"EBITDA":        {200},
		"Depreciation":  {50},
		"Total Revenue": {1200},
	})

	result := CalculateZScore(data)
	require.NotNil(t, result.Score)
	assert.InDelta(t, 4.155, *result.Score, 1e-9)
	assert.Empty(t, result.Problematic)
	assert.Equal(t, []string{
		"Total Assets (calculated from Current + Non-Current Assets)",
		"Retained Earnings (calculated from Total Equity - Capital Stock)",
		"EBIT (calculated from EBITDA - Depreciation)",
		"Market Value (calculated from Shares * Price)",
	}, result.Substituted)
}

func TestCalculateZScore_MissingTotalAssets(t *testing.T) {
	data := healthyCompany()
	data.BalanceSheet = table(map[string][]float64{
		"Current Liabilities": {200},
	})

	result := CalculateZScore(data)
	assert.True(t, result.Absent())
	assert.Nil(t, result.Components)
	assert.Nil(t, result.Status)
	assert.Equal(t, []string{"Total Assets"}, result.Problematic)
}

func TestCalculateZScore_MissingInputsDegradeToZero(t *testing.T) {
	data := healthyCompany()
	data.Info = models.CompanyInfo{}
	data.IncomeStatement = nil

	result := CalculateZScore(data)
	require.NotNil(t, result.Score)
	assert.Contains(t, result.Problematic, "EBIT")
	assert.Contains(t, result.Problematic, "Market Value")
	assert.Contains(t, result.Problematic, "Sales/Revenue")

	// Only working capital and retained earnings contribute.
	assert.InDelta(t, 1.2*0.2+1.4*0.3, *result.Score, 1e-9)
}

func TestCalculateZScore_NilData(t *testing.T) {
	result := CalculateZScore(nil)
	assert.True(t, result.Absent())
	assert.NotEmpty(t, result.Problematic)
}

func TestCalculateZScore_ZeroLiabilitiesSkipsMarketRatio(t *testing.T) {
	data := healthyCompany()
	delete(data.BalanceSheet.Rows, "Total Liabilities Net Minority Interest")

	result := CalculateZScore(data)
	require.NotNil(t, result.Score)
	assert.Zero(t, result.Components.MarketValueToLiabilities)
	assert.InDelta(t, 4.155-1.8, *result.Score, 1e-9)
}
