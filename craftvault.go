// Package craftvault wires the item catalog, material resolver and crafting
// list services over a shared persistent cache. It is the composition root:
// construct an App at process start, share it, and Close it on shutdown.
package craftvault

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CraftVault_Go/internal/catalog"
	"github.com/osse101/CraftVault_Go/internal/config"
	"github.com/osse101/CraftVault_Go/internal/database"
	"github.com/osse101/CraftVault_Go/internal/lists"
	"github.com/osse101/CraftVault_Go/internal/logger"
	"github.com/osse101/CraftVault_Go/internal/provider"
	"github.com/osse101/CraftVault_Go/internal/resolver"
	"github.com/osse101/CraftVault_Go/internal/store"
)

// Connection pool settings
const (
	DefaultMaxConnections  = 10
	DefaultMaxConnIdleTime = 5 * time.Minute
	DefaultMaxConnLifetime = 30 * time.Minute
)

// App bundles the service layer over one shared cache store and provider.
type App struct {
	Catalog  catalog.Service
	Resolver resolver.Service
	Lists    lists.Service
	Store    store.Store

	db *pgxpool.Pool
}

// Open loads configuration from the environment and constructs the App.
func Open(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return OpenWithConfig(ctx, cfg)
}

// OpenWithConfig constructs the App from an explicit configuration. It
// installs the default logger, connects to the database, applies pending
// migrations and wires the services.
func OpenWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.Init(logger.NewConfig(
		cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName,
		cfg.Version, cfg.Environment, false,
	))

	connString := cfg.GetDBConnString()
	db, err := database.NewPool(connString,
		DefaultMaxConnections, DefaultMaxConnIdleTime, DefaultMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(ctx, connString); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	st := store.NewPostgresStore(db, cfg.CacheTTL)

	client := provider.NewClient(provider.Config{
		BaseURL:     cfg.ProviderBaseURL,
		IconBaseURL: cfg.ProviderIconBaseURL,
		Timeout:     cfg.ProviderTimeout,
	})
	dedup, err := provider.NewDeduplicator(client, cfg.DedupCacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}

	cat := catalog.NewService(st, dedup)

	return &App{
		Catalog:  cat,
		Resolver: resolver.NewService(cat),
		Lists:    lists.NewService(lists.NewPostgresRepository(db)),
		Store:    st,
		db:       db,
	}, nil
}

// Close releases the database pool. The App must not be used afterwards.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
