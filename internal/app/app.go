package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/eodhd"
	"github.com/ternarybob/finhealth/internal/handlers"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/models"
	"github.com/ternarybob/finhealth/internal/services/analysis"
	"github.com/ternarybob/finhealth/internal/services/auth"
	"github.com/ternarybob/finhealth/internal/services/cache"
	"github.com/ternarybob/finhealth/internal/services/market"
	"github.com/ternarybob/finhealth/internal/services/scheduler"
	"github.com/ternarybob/finhealth/internal/services/search"
	"github.com/ternarybob/finhealth/internal/storage"
)

// CachePurgeJob is the scheduler name of the cache retention job.
const CachePurgeJob = "cache_purge"

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Data services
	EODHDClient   *eodhd.Client
	CacheService  *cache.Service
	MarketService *market.Service
	SearchService *search.Service

	// Analysis and access
	AnalysisService  *analysis.Service
	AuthService      *auth.Service
	SchedulerService *scheduler.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	PageHandler     *handlers.PageHandler
	AuthHandler     *handlers.AuthHandler
	SearchHandler   *handlers.SearchHandler
	AnalysisHandler *handlers.AnalysisHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.initHandlers(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	logger.Info().
		Bool("auth_enabled", cfg.Auth.Enabled).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Str("search_provider", cfg.Search.Provider).
		Bool("eodhd_key", app.EODHDClient.HasAPIKey()).
		Msg("Application initialization complete")

	return app, nil
}

// NewAnalyzer builds only the data and analysis services, for CLI commands
// that do not serve HTTP.
func NewAnalyzer(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Cache.Enabled {
		if err := app.initDatabase(); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	app.initDataServices()
	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

func (a *App) initDataServices() {
	cfg := a.Config

	opts := []eodhd.ClientOption{
		eodhd.WithLogger(a.Logger),
		eodhd.WithBaseURL(cfg.EODHD.BaseURL),
		eodhd.WithRateLimit(cfg.EODHD.RateLimit),
		eodhd.WithHTTPClient(&http.Client{Timeout: common.ParseDuration(cfg.EODHD.Timeout, 30*time.Second)}),
	}
	a.EODHDClient = eodhd.NewClient(cfg.EODHD.APIKey, opts...)
	if !a.EODHDClient.HasAPIKey() {
		a.Logger.Warn().Msg("EODHD API key not configured - analysis will fail until eodhd.api_key or EODHD_API_KEY is set")
	}

	if a.StorageManager != nil {
		cacheConfig := models.CacheConfig{
			Type:    models.ParseCacheType(cfg.Cache.Type),
			Hours:   cfg.Cache.Hours,
			Enabled: cfg.Cache.Enabled,
		}
		retention := time.Duration(cfg.Cache.RetentionHours) * time.Hour
		a.CacheService = cache.NewService(a.StorageManager.CompanyCacheStorage(), cacheConfig, retention, a.Logger)
	}

	a.MarketService = market.NewService(a.EODHDClient, a.CacheService, cfg.EODHD.DefaultExchange, a.Logger)
	a.SearchService = search.NewSearchService(cfg, a.EODHDClient, a.Logger)
	a.AnalysisService = analysis.NewService(a.MarketService, analysis.OptionsFromConfig(cfg), a.Logger)
}

// initServices initializes all business services
func (a *App) initServices() error {
	a.initDataServices()

	authService, err := auth.NewService(a.Config.Auth, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}
	a.AuthService = authService
	if a.Config.IsProduction() && a.Config.Auth.Enabled && a.Config.Auth.SessionSecret == "" {
		a.Logger.Warn().Msg("auth.session_secret not set - sessions will not survive a restart")
	}

	a.SchedulerService = scheduler.NewService(a.Logger)
	if a.CacheService.Enabled() && a.Config.Cache.PurgeSchedule != "" {
		purge := func(ctx context.Context) error {
			_, err := a.CacheService.Purge(ctx)
			return err
		}
		if err := a.SchedulerService.RegisterJob(CachePurgeJob, a.Config.Cache.PurgeSchedule, 5*time.Minute, purge); err != nil {
			return fmt.Errorf("failed to register %s job: %w", CachePurgeJob, err)
		}
	}
	if err := a.SchedulerService.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() error {
	a.APIHandler = handlers.NewAPIHandler(a.Logger, a.SchedulerService)
	a.SearchHandler = handlers.NewSearchHandler(a.SearchService, a.Logger)
	a.AnalysisHandler = handlers.NewAnalysisHandler(a.AnalysisService, a.Logger)

	pageHandler, err := handlers.NewPageHandler(a.Logger, a.AnalysisService, a.Config.Server.TemplatesDir)
	if err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}
	a.PageHandler = pageHandler
	a.AuthHandler = handlers.NewAuthHandler(a.AuthService, a.PageHandler, a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
	return nil
}

// Close closes all application resources
func (a *App) Close() error {
	if a.SchedulerService != nil {
		if err := a.SchedulerService.Stop(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to stop scheduler service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
