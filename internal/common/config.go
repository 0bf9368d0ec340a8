package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	EODHD       EODHDConfig    `toml:"eodhd"`
	Search      SearchConfig   `toml:"search"`
	Storage     StorageConfig  `toml:"storage"`
	Cache       CacheConfig    `toml:"cache"`
	Logging     LoggingConfig  `toml:"logging"`
	Auth        AuthConfig     `toml:"auth"`
	Merton      MertonConfig   `toml:"merton"`
	Analysis    AnalysisConfig `toml:"analysis"`
}

type ServerConfig struct {
	Port         int    `toml:"port" validate:"min=1,max=65535"`
	Host         string `toml:"host"`
	TemplatesDir string `toml:"templates_dir"` // page overrides; embedded pages are used when empty
}

// EODHDConfig configures the market data provider.
type EODHDConfig struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url" validate:"required,url"`
	DefaultExchange string `toml:"default_exchange" validate:"required"` // applied to bare tickers, e.g. "US"
	RateLimit       int    `toml:"rate_limit" validate:"min=0"`          // requests per second, 0 disables the throttle
	Timeout         string `toml:"timeout"`                              // e.g. "30s"
}

// SearchConfig selects and configures the company search provider.
type SearchConfig struct {
	Provider    string `toml:"provider" validate:"oneof=yahoo eodhd"`
	BaseURL     string `toml:"base_url"` // Yahoo Finance host; ignored for eodhd
	QuotesCount int    `toml:"quotes_count" validate:"min=1,max=50"`
	MinQuery    int    `toml:"min_query" validate:"min=1"`
	Timeout     string `toml:"timeout"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// CacheConfig controls reuse of fetched company data.
type CacheConfig struct {
	Enabled        bool   `toml:"enabled"`
	Type           string `toml:"type" validate:"omitempty,oneof=none rolling_time hard_time"`
	Hours          int    `toml:"hours" validate:"min=0"`
	PurgeSchedule  string `toml:"purge_schedule"`  // 6-field cron expression
	RetentionHours int    `toml:"retention_hours"` // entries older than this are purged
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
	Dir        string   `toml:"dir"`         // log and crash file directory; "logs" next to the executable when empty
}

// AuthConfig configures the login gate.
type AuthConfig struct {
	Enabled       bool         `toml:"enabled"`
	SessionSecret string       `toml:"session_secret"` // HMAC key for session cookies; random per process when empty
	IdleTimeout   string       `toml:"idle_timeout"`   // e.g. "30m"
	Salt          string       `toml:"salt" validate:"required"`
	Iterations    int          `toml:"iterations" validate:"min=1"`
	CookieSecure  bool         `toml:"cookie_secure"`
	Users         []UserConfig `toml:"users" validate:"dive"`
}

// UserConfig is an additional login. Password is plain text and hashed on load.
type UserConfig struct {
	Email    string `toml:"email" validate:"required,email"`
	Password string `toml:"password" validate:"required"`
}

// MertonConfig holds solver parameters.
type MertonConfig struct {
	RiskFreeRate  float64 `toml:"risk_free_rate"`
	Horizon       float64 `toml:"horizon" validate:"gt=0"`
	MaxIterations int     `toml:"max_iterations" validate:"min=1"`
	Tolerance     float64 `toml:"tolerance" validate:"gt=0"`
}

// AnalysisConfig bounds per-request analysis work.
type AnalysisConfig struct {
	Concurrency int    `toml:"concurrency" validate:"min=1"` // tickers analyzed in parallel by batch requests
	MaxBatch    int    `toml:"max_batch" validate:"min=1"`
	Timeout     string `toml:"timeout"` // per-ticker deadline, e.g. "60s"
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		EODHD: EODHDConfig{
			BaseURL:         "https://eodhd.com/api",
			DefaultExchange: "US",
			RateLimit:       10,
			Timeout:         "30s",
		},
		Search: SearchConfig{
			Provider:    "yahoo",
			BaseURL:     "https://query2.finance.yahoo.com",
			QuotesCount: 6,
			MinQuery:    2,
			Timeout:     "5s",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Cache: CacheConfig{
			Enabled:        true,
			Type:           "hard_time",
			Hours:          24,
			PurgeSchedule:  "0 0 */6 * * *", // Every 6 hours
			RetentionHours: 72,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05",
		},
		Auth: AuthConfig{
			Enabled:     true,
			IdleTimeout: "30m",
			Salt:        "financial_analyzer_salt",
			Iterations:  100000,
		},
		Merton: MertonConfig{
			RiskFreeRate:  0.05,
			Horizon:       1.0,
			MaxIterations: 100,
			Tolerance:     1e-4,
		},
		Analysis: AnalysisConfig{
			Concurrency: 4,
			MaxBatch:    20,
			Timeout:     "60s",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> .env -> env.
// Later files override earlier files. CLI flags are applied separately by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// .env only fills variables that are not already set in the process environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies FINHEALTH_* environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINHEALTH_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("FINHEALTH_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FINHEALTH_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// EODHD configuration (EODHD_API_KEY is the vendor's conventional name)
	if key := os.Getenv("FINHEALTH_EODHD_API_KEY"); key != "" {
		config.EODHD.APIKey = key
	} else if key := os.Getenv("EODHD_API_KEY"); key != "" {
		config.EODHD.APIKey = key
	}
	if baseURL := os.Getenv("FINHEALTH_EODHD_BASE_URL"); baseURL != "" {
		config.EODHD.BaseURL = baseURL
	}
	if exchange := os.Getenv("FINHEALTH_EODHD_DEFAULT_EXCHANGE"); exchange != "" {
		config.EODHD.DefaultExchange = exchange
	}

	// Search configuration
	if provider := os.Getenv("FINHEALTH_SEARCH_PROVIDER"); provider != "" {
		config.Search.Provider = strings.ToLower(provider)
	}

	// Storage configuration
	if badgerPath := os.Getenv("FINHEALTH_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Cache configuration
	if enabled := os.Getenv("FINHEALTH_CACHE_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Cache.Enabled = b
		}
	}

	// Logging configuration
	if level := os.Getenv("FINHEALTH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if dir := os.Getenv("FINHEALTH_LOG_DIR"); dir != "" {
		config.Logging.Dir = dir
	}
	if output := os.Getenv("FINHEALTH_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if o = strings.TrimSpace(o); o != "" {
				outputs = append(outputs, o)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Auth configuration
	if enabled := os.Getenv("FINHEALTH_AUTH_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Auth.Enabled = b
		}
	}
	if secret := os.Getenv("FINHEALTH_SESSION_SECRET"); secret != "" {
		config.Auth.SessionSecret = secret
	}

	// Merton configuration
	if rate := os.Getenv("FINHEALTH_MERTON_RISK_FREE_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil {
			config.Merton.RiskFreeRate = r
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks field constraints and the cron schedule.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Cache.Enabled && c.Cache.PurgeSchedule != "" {
		if err := ValidateSchedule(c.Cache.PurgeSchedule); err != nil {
			return err
		}
	}
	for name, d := range map[string]string{
		"eodhd.timeout":     c.EODHD.Timeout,
		"search.timeout":    c.Search.Timeout,
		"auth.idle_timeout": c.Auth.IdleTimeout,
		"analysis.timeout":  c.Analysis.Timeout,
	} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", name, err)
		}
	}
	return nil
}

// ValidateSchedule validates a 6-field (seconds-first) cron expression.
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ParseDuration parses a config duration string, returning fallback when empty or invalid.
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
