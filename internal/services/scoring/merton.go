package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/ternarybob/finhealth/internal/models"
)

// Merton model defaults
const (
	DefaultRiskFreeRate  = 0.05
	DefaultHorizon       = 1.0
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-4

	MinDefaultProbability = 0.01
	MaxDefaultProbability = 0.99

	// BookEquityPremium scales book equity when no market value is available.
	BookEquityPremium = 1.1

	// DebtLiabilityMultiplier scales total debt to approximate total liabilities.
	DebtLiabilityMultiplier = 1.2
)

var (
	errNonPositiveRatio = errors.New("asset to debt ratio is not positive")
	errZeroVolatility   = errors.New("asset volatility is not positive")
	errNonFinite        = errors.New("non-finite intermediate value")
	errCDFUnderflow     = errors.New("normal CDF of d1 underflowed to zero")
)

// MertonParams controls the solver.
type MertonParams struct {
	RiskFreeRate  float64 `json:"risk_free_rate"`
	Horizon       float64 `json:"horizon"`
	MaxIterations int     `json:"max_iterations"`
	Tolerance     float64 `json:"tolerance"`
}

// DefaultMertonParams returns r = 5%, T = 1 year, 100 iterations, tolerance 1e-4.
func DefaultMertonParams() MertonParams {
	return MertonParams{
		RiskFreeRate:  DefaultRiskFreeRate,
		Horizon:       DefaultHorizon,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

func (p MertonParams) withDefaults() MertonParams {
	d := DefaultMertonParams()
	if p.Horizon <= 0 || !isFinite(p.Horizon) {
		p.Horizon = d.Horizon
	}
	if p.MaxIterations <= 0 {
		p.MaxIterations = d.MaxIterations
	}
	if p.Tolerance <= 0 || !isFinite(p.Tolerance) {
		p.Tolerance = d.Tolerance
	}
	if !isFinite(p.RiskFreeRate) {
		p.RiskFreeRate = d.RiskFreeRate
	}
	return p
}

// distance evaluates (ln(V/F) + (r + drift·σ²)·T) / (σ·√T), checking every
// operand before the logarithm and the division. drift is +0.5 for d1 and
// -0.5 for the distance to default.
func distance(assetValue, assetVolatility, debt float64, p MertonParams, drift float64) (float64, error) {
	ratio := assetValue / debt
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return 0, errNonPositiveRatio
	}

	denom := assetVolatility * math.Sqrt(p.Horizon)
	if !(denom > 0) || math.IsInf(denom, 0) {
		return 0, errZeroVolatility
	}

	d := (math.Log(ratio) + (p.RiskFreeRate+drift*assetVolatility*assetVolatility)*p.Horizon) / denom
	if !isFinite(d) {
		return 0, errNonFinite
	}
	return d, nil
}

// next computes the undamped fixed-point update from the current state.
func (s MertonState) next(in MertonInputs, p MertonParams) (float64, float64, error) {
	d1, err := distance(s.AssetValue, s.AssetVolatility, in.DebtFaceValue, p, 0.5)
	if err != nil {
		return 0, 0, err
	}

	cdf := NormalCDF(d1)
	if !(cdf > 0) {
		return 0, 0, errCDFUnderflow
	}

	assetValue := in.EquityValue / cdf
	assetVolatility := in.EquityVolatility * in.EquityValue / (s.AssetValue * cdf)
	if !isFinite(assetValue) || !isFinite(assetVolatility) {
		return 0, 0, errNonFinite
	}
	return assetValue, assetVolatility, nil
}

// SolveMerton estimates the implied asset value and volatility from equity value,
// debt face value and equity volatility, then derives the distance to default and
// the probability of default clamped to [1%, 99%].
func SolveMerton(in MertonInputs, params MertonParams) MertonResult {
	result := MertonResult{ScoreResult: newScoreResult()}

	if IsProblematic(in.EquityValue) || in.EquityValue < 0 {
		result.Problem("Market Value of Equity")
		return result
	}
	if IsProblematic(in.DebtFaceValue) || in.DebtFaceValue < 0 {
		result.Problem("Total Liabilities")
		return result
	}
	if IsProblematic(in.EquityVolatility) || in.EquityVolatility < 0 {
		result.Problem("Equity Volatility")
		return result
	}

	p := params.withDefaults()
	inputs := in
	result.Inputs = &inputs

	state := MertonState{
		AssetValue:      in.EquityValue + in.DebtFaceValue,
		AssetVolatility: in.EquityVolatility * in.EquityValue / (in.EquityValue + in.DebtFaceValue),
	}

	// state only advances after a successful update, so on error it already
	// holds the last valid (V_A, σ_A).
	for i := 0; i < p.MaxIterations; i++ {
		state.Iteration = i + 1

		assetValue, assetVolatility, err := state.next(in, p)
		if err != nil {
			result.Problem(fmt.Sprintf("Convergence error in iteration %d: %v", i, err))
			break
		}

		if math.Abs(assetValue-state.AssetValue) < p.Tolerance &&
			math.Abs(assetVolatility-state.AssetVolatility) < p.Tolerance {
			state.Converged = true
			break
		}

		state.AssetValue = 0.5 * (state.AssetValue + assetValue)
		state.AssetVolatility = 0.5 * (state.AssetVolatility + assetVolatility)
	}

	if !state.Converged {
		result.Substitute("Using last iteration values (no convergence)")
	}
	result.State = &state

	dd, err := distance(state.AssetValue, state.AssetVolatility, in.DebtFaceValue, p, -0.5)
	if err != nil {
		result.Problem(fmt.Sprintf("Error in final probability calculation: %v", err))
		return result
	}

	probability := NormalCDF(-dd)
	if probability > MaxDefaultProbability {
		probability = MaxDefaultProbability
		result.Substitute("Capped probability at 99%")
	} else if probability < MinDefaultProbability {
		probability = MinDefaultProbability
		result.Substitute("Floored probability at 1%")
	}

	result.Score = floatPtr(probability)
	result.DistanceToDefault = floatPtr(dd)
	status := MertonStatus(probability)
	result.Status = &status
	return result
}

// CalculateMerton resolves equity value, debt and equity volatility from company
// data and runs the solver. Notes from input resolution precede solver notes.
func CalculateMerton(data *models.CompanyData, params MertonParams) (result MertonResult) {
	result = MertonResult{ScoreResult: newScoreResult()}
	defer func() {
		if r := recover(); r != nil {
			result.Score = nil
			result.DistanceToDefault = nil
			result.Problem(fmt.Sprintf("Merton Model Calculation Error: %v", r))
		}
	}()

	if data == nil {
		result.Problem("Company data")
		return result
	}

	bars, ok := SelectPriceWindow(data, &result.Notes)
	if !ok {
		return result
	}
	equityVolatility := EquityVolatility(bars, &result.Notes)

	balance := data.BalanceSheet
	info := data.Info

	equity, ok := Chain{
		Label: "Market Value of Equity",
		Strategies: []Strategy{
			FromValue(info.MarketCap),
			Derived("Market Cap (calculated from Shares * Price)", func(n *Notes) float64 {
				shares := info.SharesOutstanding
				if IsProblematic(shares) {
					shares = info.FloatShares
					if !IsProblematic(shares) {
						n.Substitute("Using float shares instead of shares outstanding")
					}
				}
				price := info.CurrentPrice
				if IsProblematic(price) {
					price = LatestClose(bars)
					n.Substitute("Using latest closing price")
				}
				return shares * price
			}),
			Derived("Using book value of equity with premium", func(*Notes) float64 {
				return Get(balance, FieldTotalEquity) * BookEquityPremium
			}),
		},
	}.Resolve(&result.Notes)
	if !ok {
		return result
	}

	debt, ok := Chain{
		Label: "Total Liabilities",
		Strategies: []Strategy{
			FromTable(balance, FieldTotalLiabilities),
			Derived("Total Liabilities (sum of current liabilities and long-term debt)", func(*Notes) float64 {
				return Get(balance, FieldCurrentLiabilities) + Get(balance, FieldLongTermDebt)
			}),
			Derived("Using total debt with adjustment for non-debt liabilities", func(*Notes) float64 {
				return Get(balance, FieldTotalDebt) * DebtLiabilityMultiplier
			}),
		},
	}.Resolve(&result.Notes)
	if !ok {
		return result
	}

	solved := SolveMerton(MertonInputs{
		EquityValue:      equity,
		DebtFaceValue:    debt,
		EquityVolatility: equityVolatility,
	}, params)

	solved.Problematic = append(result.Problematic, solved.Problematic...)
	solved.Substituted = append(result.Substituted, solved.Substituted...)
	return solved
}
