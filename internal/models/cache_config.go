package models

import (
	"strings"
	"time"
)

// CacheType represents the company data caching strategy
type CacheType string

const (
	// CacheTypeNone disables caching
	CacheTypeNone CacheType = "none"

	// CacheTypeRollingTime considers data fresh if fetched within N hours from now
	CacheTypeRollingTime CacheType = "rolling_time"

	// CacheTypeHardTime considers data fresh if fetched since 00:00 UTC today
	CacheTypeHardTime CacheType = "hard_time"
)

// CacheConfig holds cache settings for fetched company data.
type CacheConfig struct {
	Type    CacheType
	Hours   int // rolling window in hours
	Enabled bool
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Type:    CacheTypeHardTime,
		Hours:   24,
		Enabled: true,
	}
}

// ParseCacheType maps a config string to a CacheType, defaulting to hard_time.
func ParseCacheType(value string) CacheType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return CacheTypeNone
	case "rolling_time":
		return CacheTypeRollingTime
	default:
		return CacheTypeHardTime
	}
}

// IsFresh reports whether data fetched at fetchedAt may still be served at now.
func (c CacheConfig) IsFresh(fetchedAt, now time.Time) bool {
	if !c.Enabled || c.Type == CacheTypeNone || fetchedAt.IsZero() {
		return false
	}

	switch c.Type {
	case CacheTypeRollingTime:
		return now.Sub(fetchedAt) < time.Duration(c.Hours)*time.Hour
	case CacheTypeHardTime:
		now = now.UTC()
		todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return !fetchedAt.UTC().Before(todayStart)
	default:
		return false
	}
}

// CompanyCacheEntry is a cached fetch result keyed by EODHD symbol.
type CompanyCacheEntry struct {
	Symbol    string `badgerhold:"key"`
	FetchedAt time.Time
	Data      *CompanyData
}
