package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// CompanyCacheStorage implements interfaces.CompanyCacheStorage for Badger
type CompanyCacheStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCompanyCacheStorage creates a new CompanyCacheStorage instance
func NewCompanyCacheStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CompanyCacheStorage {
	return &CompanyCacheStorage{
		db:     db,
		logger: logger,
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Get returns the cached entry for a symbol (case-insensitive)
func (s *CompanyCacheStorage) Get(ctx context.Context, symbol string) (*models.CompanyCacheEntry, error) {
	var entry models.CompanyCacheEntry
	err := s.db.Store().Get(normalizeSymbol(symbol), &entry)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, interfaces.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached company %s: %w", symbol, err)
	}
	return &entry, nil
}

// Put stores data under its symbol, replacing any earlier entry
func (s *CompanyCacheStorage) Put(ctx context.Context, data *models.CompanyData) error {
	if data == nil || data.Symbol == "" {
		return fmt.Errorf("company data must have a symbol")
	}

	fetchedAt := data.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	key := normalizeSymbol(data.Symbol)
	entry := &models.CompanyCacheEntry{
		Symbol:    key,
		FetchedAt: fetchedAt,
		Data:      data,
	}

	if err := s.db.Store().Upsert(key, entry); err != nil {
		return fmt.Errorf("failed to cache company %s: %w", key, err)
	}

	s.logger.Debug().
		Str("symbol", key).
		Str("fetched_at", fetchedAt.Format(time.RFC3339)).
		Msg("Cached company data")
	return nil
}

// PurgeBefore deletes every entry fetched before cutoff
func (s *CompanyCacheStorage) PurgeBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := badgerhold.Where("FetchedAt").Lt(cutoff)

	count, err := s.db.Store().Count(&models.CompanyCacheEntry{}, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count expired cache entries: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	if err := s.db.Store().DeleteMatching(&models.CompanyCacheEntry{}, query); err != nil {
		return 0, fmt.Errorf("failed to purge expired cache entries: %w", err)
	}

	// Deleted entries only free disk once their value log files are rewritten
	rewritten, err := s.db.CollectGarbage()
	if err != nil {
		s.logger.Warn().Err(err).Msg("Cache purge succeeded but value log GC failed")
	}

	s.logger.Debug().
		Int("purged", int(count)).
		Int("vlog_rewritten", rewritten).
		Str("cutoff", cutoff.Format(time.RFC3339)).
		Msg("Purged expired company cache entries")

	return int(count), nil
}

// Count returns the number of cached entries
func (s *CompanyCacheStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.CompanyCacheEntry{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return int(count), nil
}
