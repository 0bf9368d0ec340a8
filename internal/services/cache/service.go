// Package cache decides whether fetched company data can be reused and
// evicts entries past their retention window.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/models"
)

// Service provides company data cache freshness checking.
type Service struct {
	storage   interfaces.CompanyCacheStorage
	config    models.CacheConfig
	retention time.Duration
	logger    arbor.ILogger
	now       func() time.Time
}

// NewService creates a new cache service. retention bounds how long entries
// are kept before Purge removes them; zero keeps them for 72 hours.
func NewService(storage interfaces.CompanyCacheStorage, config models.CacheConfig, retention time.Duration, logger arbor.ILogger) *Service {
	if retention <= 0 {
		retention = 72 * time.Hour
	}
	return &Service{
		storage:   storage,
		config:    config,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Enabled reports whether lookups can ever hit.
func (s *Service) Enabled() bool {
	return s != nil && s.storage != nil && s.config.Enabled && s.config.Type != models.CacheTypeNone
}

// Lookup returns cached data for an EODHD symbol when it is still fresh.
// Storage failures are logged and treated as a miss.
func (s *Service) Lookup(ctx context.Context, symbol string) (*models.CompanyData, bool) {
	if !s.Enabled() {
		return nil, false
	}

	entry, err := s.storage.Get(ctx, symbol)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to read company cache")
		}
		return nil, false
	}

	if entry.Data == nil || !s.config.IsFresh(entry.FetchedAt, s.now()) {
		s.logger.Debug().
			Str("symbol", symbol).
			Str("fetched_at", entry.FetchedAt.Format(time.RFC3339)).
			Msg("Cached company data is stale")
		return nil, false
	}

	s.logger.Debug().Str("symbol", symbol).Str("cache_type", string(s.config.Type)).Msg("Company cache hit")
	return entry.Data, true
}

// Store saves freshly fetched data. Failures are logged, never returned:
// a cache write must not fail an analysis.
func (s *Service) Store(ctx context.Context, data *models.CompanyData) {
	if !s.Enabled() || data == nil {
		return
	}
	if err := s.storage.Put(ctx, data); err != nil {
		s.logger.Warn().Err(err).Str("symbol", data.Symbol).Msg("Failed to write company cache")
	}
}

// Purge removes entries fetched before the retention window.
func (s *Service) Purge(ctx context.Context) (int, error) {
	if s.storage == nil {
		return 0, nil
	}

	cutoff := s.now().Add(-s.retention)
	removed, err := s.storage.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Int("removed", removed).
		Str("cutoff", cutoff.Format(time.RFC3339)).
		Msg("Company cache purged")
	return removed, nil
}
