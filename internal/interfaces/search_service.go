package interfaces

import (
	"context"

	"github.com/ternarybob/finhealth/internal/models"
)

// CompanySearcher returns ticker suggestions for a free-text query.
type CompanySearcher interface {
	Suggest(ctx context.Context, query string) ([]models.CompanySuggestion, error)
}
