// Package scoring provides pure calculation functions for corporate default-risk scores:
// the Altman Z-Score, the Ohlson O-Score and the Merton structural model.
// All functions are stateless and perform no I/O. Calculators never return errors;
// they degrade to an absent score and explain why in the result notes.
package scoring

// Notes records data-quality annotations in the order they were encountered.
type Notes struct {
	Problematic []string `json:"problematic"`
	Substituted []string `json:"substituted"`
}

func newNotes() Notes {
	return Notes{
		Problematic: []string{},
		Substituted: []string{},
	}
}

// Problem records an input that could not be resolved or a calculation failure.
func (n *Notes) Problem(note string) {
	n.Problematic = append(n.Problematic, note)
}

// Substitute records a fallback value used in place of a primary input.
func (n *Notes) Substitute(note string) {
	n.Substituted = append(n.Substituted, note)
}

// HasNotes reports whether any annotation was recorded.
func (n Notes) HasNotes() bool {
	return len(n.Problematic) > 0 || len(n.Substituted) > 0
}

// ScoreResult is the common shape of every calculator output.
// A nil Score means the score is absent; Problematic then explains why.
type ScoreResult struct {
	Score *float64 `json:"score"`
	Notes
}

func newScoreResult() ScoreResult {
	return ScoreResult{Notes: newNotes()}
}

// Absent reports whether the calculator could not produce a score.
func (r ScoreResult) Absent() bool {
	return r.Score == nil
}

// Status is a display band for a score.
type Status struct {
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// ZScoreComponents holds the ratios feeding the Z-Score.
type ZScoreComponents struct {
	WorkingCapitalToAssets   float64 `json:"working_capital_to_assets"`   // A
	RetainedEarningsToAssets float64 `json:"retained_earnings_to_assets"` // B
	EBITToAssets             float64 `json:"ebit_to_assets"`              // C
	MarketValueToLiabilities float64 `json:"market_value_to_liabilities"` // D
	SalesToAssets            float64 `json:"sales_to_assets"`             // E
}

// ZScoreResult is the output of CalculateZScore.
type ZScoreResult struct {
	ScoreResult
	Components *ZScoreComponents `json:"components,omitempty"`
	Status     *Status           `json:"status,omitempty"`
}

// OScoreComponents holds the variables feeding the O-Score.
type OScoreComponents struct {
	Size  float64 `json:"size"`
	TLTA  float64 `json:"tlta"`
	WCTA  float64 `json:"wcta"`
	CLCA  float64 `json:"clca"`
	OENEG float64 `json:"oeneg"`
	NITA  float64 `json:"nita"`
	INTWO float64 `json:"intwo"`
	CHIN  float64 `json:"chin"`
}

// OScoreResult is the output of CalculateOScore.
// Score holds the raw O-Score; Probability is its logistic transform.
type OScoreResult struct {
	ScoreResult
	Probability *float64          `json:"probability"`
	Components  *OScoreComponents `json:"components,omitempty"`
	Status      *Status           `json:"status,omitempty"`
}

// MertonInputs are the observables fed to the solver.
type MertonInputs struct {
	EquityValue      float64 `json:"equity_value"`
	DebtFaceValue    float64 `json:"debt_face_value"`
	EquityVolatility float64 `json:"equity_volatility"`
}

// MertonState is the solver's working estimate of the unobservable asset value and volatility.
type MertonState struct {
	AssetValue      float64 `json:"asset_value"`
	AssetVolatility float64 `json:"asset_volatility"`
	Iteration       int     `json:"iteration"`
	Converged       bool    `json:"converged"`
}

// MertonResult is the output of SolveMerton and CalculateMerton.
// Score holds the probability of default.
type MertonResult struct {
	ScoreResult
	DistanceToDefault *float64      `json:"distance_to_default"`
	Inputs            *MertonInputs `json:"inputs,omitempty"`
	State             *MertonState  `json:"state,omitempty"`
	Status            *Status       `json:"status,omitempty"`
}

// Scores bundles the three calculator outputs for one company.
type Scores struct {
	ZScore ZScoreResult `json:"z_score"`
	OScore OScoreResult `json:"o_score"`
	Merton MertonResult `json:"merton"`
}

// Available reports whether at least one score could be computed.
func (s Scores) Available() bool {
	return !s.ZScore.Absent() || s.OScore.Probability != nil || !s.Merton.Absent()
}

func floatPtr(v float64) *float64 {
	return &v
}
