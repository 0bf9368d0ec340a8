package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/finhealth/internal/models"
)

// ErrCacheMiss is returned when no cached entry exists for a symbol.
var ErrCacheMiss = errors.New("cache miss")

// CompanyCacheStorage persists fetched company data between requests.
// It is a response cache only; entries may be evicted at any time.
type CompanyCacheStorage interface {
	// Get returns the cached entry for an EODHD symbol, or ErrCacheMiss
	Get(ctx context.Context, symbol string) (*models.CompanyCacheEntry, error)

	// Put stores or replaces the entry for data.Symbol
	Put(ctx context.Context, data *models.CompanyData) error

	// PurgeBefore deletes entries fetched before cutoff and returns how many were removed
	PurgeBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of cached entries
	Count(ctx context.Context) (int, error)
}

// StorageManager owns the database handle and the storages built on it.
type StorageManager interface {
	CompanyCacheStorage() CompanyCacheStorage
	Close() error
}
