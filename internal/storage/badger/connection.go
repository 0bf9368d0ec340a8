package badger

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// Cached statements are small and churn on every refresh, so the value log is
// kept short to let GC reclaim purged entries quickly.
const (
	cacheValueLogFileSize = 64 << 20
	gcDiscardRatio        = 0.5
)

// BadgerDB manages the Badger database backing the company data cache
type BadgerDB struct {
	store  *badgerhold.Store
	logger arbor.ILogger
	config *common.BadgerConfig
}

// NewBadgerDB opens the company cache at config.Path, clearing it first when
// reset_on_startup is set.
func NewBadgerDB(logger arbor.ILogger, config *common.BadgerConfig) (*BadgerDB, error) {
	if config.ResetOnStartup {
		clearCacheDir(logger, config.Path)
	}

	if err := os.MkdirAll(config.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	store, err := badgerhold.Open(cacheOptions(config.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open company cache at %s: %w", config.Path, err)
	}

	db := &BadgerDB{
		store:  store,
		logger: logger,
		config: config,
	}

	entries, err := store.Count(&models.CompanyCacheEntry{}, nil)
	if err != nil {
		logger.Warn().Err(err).Str("path", config.Path).Msg("Failed to count cached companies")
	}
	logger.Debug().
		Str("path", config.Path).
		Int("entries", int(entries)).
		Msg("Company cache opened")

	return db, nil
}

func cacheOptions(path string) badgerhold.Options {
	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.ValueLogFileSize = cacheValueLogFileSize
	options.Logger = nil // badger's own logger is noisy; arbor covers open and GC
	return options
}

func clearCacheDir(logger arbor.ILogger, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	logger.Debug().Str("path", path).Msg("Clearing company cache (reset_on_startup=true)")
	if err := os.RemoveAll(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to clear cache directory")
	}
}

// Store returns the underlying badgerhold store
func (b *BadgerDB) Store() *badgerhold.Store {
	return b.store
}

// CollectGarbage rewrites value log files until badger reports nothing left to
// reclaim. It returns the number of files rewritten.
func (b *BadgerDB) CollectGarbage() (int, error) {
	rewritten := 0
	for {
		err := b.store.Badger().RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			return rewritten, nil
		}
		if err != nil {
			return rewritten, fmt.Errorf("value log gc failed: %w", err)
		}
		rewritten++
	}
}

// Close closes the database connection
func (b *BadgerDB) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}
