package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db     *BadgerDB
	cache  interfaces.CompanyCacheStorage
	logger arbor.ILogger
}

// NewManager opens the database and builds the storages on it
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:     db,
		cache:  NewCompanyCacheStorage(db, logger),
		logger: logger,
	}

	logger.Info().Str("path", config.Path).Msg("Badger storage manager initialized")

	return manager, nil
}

// CompanyCacheStorage returns the company data cache
func (m *Manager) CompanyCacheStorage() interfaces.CompanyCacheStorage {
	return m.cache
}

// Close closes the database connection
func (m *Manager) Close() error {
	return m.db.Close()
}
