package handlers

import (
	"context"
	"net/http"

	"github.com/ternarybob/finhealth/internal/services/analysis"
	"github.com/ternarybob/finhealth/internal/services/auth"
)

// Analyzer runs company analyses.
type Analyzer interface {
	Analyze(ctx context.Context, query string) *analysis.Report
	AnalyzeBatch(ctx context.Context, tickers []string) ([]*analysis.Report, error)
}

// SessionManager authenticates users and manages the session cookie.
type SessionManager interface {
	Authenticate(email, password string) (*auth.Session, error)
	SetCookie(w http.ResponseWriter, session *auth.Session) error
	ClearCookie(w http.ResponseWriter)
}
