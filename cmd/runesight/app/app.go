// Package app provides the application context and dependency management
// for the runesight CLI. It centralizes configuration, dependency injection,
// and lifecycle management for the commands.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/runesight/runesight/internal/analysis"
	"github.com/runesight/runesight/internal/cache"
	"github.com/runesight/runesight/internal/llm"
	"github.com/runesight/runesight/internal/riot"
)

// App represents the runesight application with all its dependencies.
// It provides a centralized place for configuration, logging, and the
// service clients, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Service clients (lazy-initialized, singletons)
	mu       sync.RWMutex
	cache    *cache.Service
	riot     *riot.Client
	analyzer *analysis.Analyzer
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Cache returns the cache service, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Cache() (*cache.Service, error) {
	a.mu.RLock()
	if a.cache != nil {
		svc := a.cache
		a.mu.RUnlock()
		return svc, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.cache != nil {
		return a.cache, nil
	}

	svc, err := cache.New(cache.Config{
		MaxSize:         a.config.CacheMaxSize,
		CleanupInterval: a.config.CacheCleanupInterval,
		TTLs:            a.config.CacheTTLs,
		Logger:          a.logger,
	})
	if err != nil {
		return nil, err
	}

	a.cache = svc
	return svc, nil
}

// Riot returns the Riot API client, creating it lazily if needed.
func (a *App) Riot() (*riot.Client, error) {
	svc, err := a.Cache()
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	if a.riot != nil {
		client := a.riot
		a.mu.RUnlock()
		return client, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.riot != nil {
		return a.riot, nil
	}

	client, err := riot.New(riot.Config{
		APIKey:   a.config.RiotAPIKey,
		Region:   a.config.RiotRegion,
		Platform: a.config.RiotPlatform,
		Cache:    svc,
		Logger:   a.logger,
	})
	if err != nil {
		return nil, err
	}

	a.riot = client
	return client, nil
}

// Analyzer returns the match analyzer, creating it lazily if needed.
// When no Gemini API key is configured the analyzer is created without a
// completer and reports itself as disabled.
func (a *App) Analyzer(ctx context.Context) (*analysis.Analyzer, error) {
	client, err := a.Riot()
	if err != nil {
		return nil, err
	}
	svc, err := a.Cache()
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	if a.analyzer != nil {
		analyzer := a.analyzer
		a.mu.RUnlock()
		return analyzer, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.analyzer != nil {
		return a.analyzer, nil
	}

	cfg := analysis.Config{
		Riot:   client,
		Cache:  svc,
		Logger: a.logger,
	}

	if a.config.GeminiAPIKey != "" {
		completer, err := llm.NewGemini(ctx, a.config.GeminiAPIKey, a.config.GeminiModel)
		if err != nil {
			return nil, err
		}
		cfg.Completer = completer
	} else {
		a.logger.Warn().Msg("GEMINI_API_KEY not set, match analysis disabled")
	}

	analyzer, err := analysis.New(cfg)
	if err != nil {
		return nil, err
	}

	a.analyzer = analyzer
	return analyzer, nil
}

// Shutdown performs graceful shutdown of the application.
// It clears cached state and releases resources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.RLock()
	svc := a.cache
	a.mu.RUnlock()

	if svc != nil {
		stats := svc.Stats()
		a.logger.Debug().
			Int("entries", stats.TotalEntries).
			Uint64("hits", stats.Hits).
			Uint64("misses", stats.Misses).
			Msg("Cache state at shutdown")
	}

	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
