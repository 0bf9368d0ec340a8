// Package interfaces provides service interfaces for dependency injection.
package interfaces

import (
	"context"

	"github.com/ternarybob/finhealth/internal/models"
)

// CompanyDataProvider assembles statements, company info and price history for a ticker.
type CompanyDataProvider interface {
	// FetchCompany returns company data for a ticker in any form accepted by
	// common.ParseTicker. A price history failure is reported in
	// CompanyData.PriceError rather than as an error.
	FetchCompany(ctx context.Context, ticker string) (*models.CompanyData, error)
}
