// Package analysis runs the three default-risk models for a ticker and
// collects the results into a report.
package analysis

import (
	"time"

	"github.com/ternarybob/finhealth/internal/models"
	"github.com/ternarybob/finhealth/internal/services/scoring"
)

// TroubleshootingHints are shown alongside a failed analysis.
var TroubleshootingHints = []string{
	"Verify the ticker symbol is correct",
	"Ensure the company is publicly traded",
	"Check if financial data is available for this company",
}

// Report is the outcome of analyzing one ticker. Exactly one of Scores and
// Error is set.
type Report struct {
	Query       string              `json:"query" yaml:"query"`
	Symbol      string              `json:"symbol" yaml:"symbol"`
	Info        *models.CompanyInfo `json:"info,omitempty" yaml:"info,omitempty"`
	Scores      *scoring.Scores     `json:"scores,omitempty" yaml:"scores,omitempty"`
	Error       string              `json:"error,omitempty" yaml:"error,omitempty"`
	Hints       []string            `json:"hints,omitempty" yaml:"hints,omitempty"`
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
}

// Failed reports whether the analysis produced an error instead of scores.
func (r *Report) Failed() bool {
	return r.Error != ""
}

// HasNotes reports whether any score carries data-quality notes.
func (r *Report) HasNotes() bool {
	if r.Scores == nil {
		return false
	}
	return r.Scores.ZScore.HasNotes() || r.Scores.OScore.HasNotes() || r.Scores.Merton.HasNotes()
}

func (r *Report) fail(err string) {
	r.Scores = nil
	r.Error = err
	r.Hints = append([]string(nil), TroubleshootingHints...)
}
