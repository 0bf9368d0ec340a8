package scoring

import (
	"math"

	"github.com/ternarybob/finhealth/internal/models"
)

const (
	// MinPriceObservations is the fewest daily bars accepted for a volatility estimate.
	MinPriceObservations = 30

	// TradingDaysPerYear annualizes daily volatility.
	TradingDaysPerYear = 252

	// DefaultEquityVolatility is used when no estimate can be derived from prices.
	DefaultEquityVolatility = 0.3
)

var lookbackNotes = map[models.Lookback]string{
	models.Lookback6M: "Using 6-month price history for volatility",
	models.Lookback3M: "Using 3-month price history for volatility",
}

// SelectPriceWindow picks the longest lookback holding at least MinPriceObservations
// bars, trying 1y, then 6mo, then 3mo. It returns false and records a problematic
// note when no window is long enough.
func SelectPriceWindow(data *models.CompanyData, n *Notes) ([]models.PriceBar, bool) {
	seen := 0
	for _, lookback := range models.Lookbacks {
		bars := data.PriceHistory(lookback)
		seen += len(bars)
		if len(bars) < MinPriceObservations {
			continue
		}
		if note, ok := lookbackNotes[lookback]; ok {
			n.Substitute(note)
		}
		return bars, true
	}

	if data != nil && data.PriceError != "" && seen == 0 {
		n.Problem("Error fetching stock data: " + data.PriceError)
		return nil, false
	}
	n.Problem("Insufficient stock price history")
	return nil, false
}

// EquityVolatility estimates annualized equity volatility from daily bars.
// It uses close-to-close log returns, then adjusted closes, then the daily
// high/low range, and finally DefaultEquityVolatility, noting each substitution.
func EquityVolatility(bars []models.PriceBar, n *Notes) float64 {
	closes := make([]float64, len(bars))
	adjusted := make([]float64, len(bars))
	ranges := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		adjusted[i] = b.AdjClose
		if b.High > 0 && b.Low > 0 {
			ranges[i] = math.Log(b.High / b.Low)
		} else {
			ranges[i] = math.NaN()
		}
	}

	daily := SampleStddev(LogReturns(closes))
	if unusableStddev(daily) {
		daily = SampleStddev(LogReturns(adjusted))
		if unusableStddev(daily) {
			daily = SampleStddev(ranges)
			n.Substitute("Using high-low range for volatility calculation")
		} else {
			n.Substitute("Using adjusted close prices for volatility")
		}
	}

	annual := daily * math.Sqrt(TradingDaysPerYear)
	if math.IsNaN(annual) || annual == 0 {
		n.Substitute("Using market average volatility (0.3)")
		return DefaultEquityVolatility
	}
	return annual
}

// LatestClose returns the close of the most recent bar, or 0 when there are none.
func LatestClose(bars []models.PriceBar) float64 {
	if len(bars) == 0 {
		return 0
	}
	return bars[len(bars)-1].Close
}

func unusableStddev(v float64) bool {
	return math.IsNaN(v) || v == 0
}
