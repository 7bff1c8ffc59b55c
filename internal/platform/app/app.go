// Package app assembles the database handles, ledger cache and services shared
// by the HTTP server and the ops CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/core/services"
	"github.com/SscSPs/ledger_tax_app/internal/platform/config"
	"github.com/SscSPs/ledger_tax_app/internal/repositories/cache"
	"github.com/SscSPs/ledger_tax_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_tax_app/internal/repositories/database/upstream"
	"github.com/SscSPs/ledger_tax_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// App owns every long-lived handle. Close releases them.
type App struct {
	Pool     *pgxpool.Pool
	SQL      *sqlx.DB
	Redis    *redis.Client
	Services *portssvc.ServiceContainer
	logger   *slog.Logger
}

// New opens the pgx pool, the sqlx handle used by upstream readers and migrations,
// and the configured ledger cache, then wires the services.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{logger: logger}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("initialize database pool: %w", err)
	}
	a.Pool = pool

	sqlDB, err := database.NewSqlxDB(cfg.DatabaseURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("initialize sqlx handle: %w", err)
	}
	a.SQL = sqlDB

	ledgerCache, err := a.newLedgerCache(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	repos := pgsql.NewRepositoryProvider(pool)
	repos.Upstream = upstream.NewReaders(sqlDB)
	repos.LedgerCache = ledgerCache
	a.Services = services.NewServiceContainer(repos)

	return a, nil
}

func (a *App) newLedgerCache(ctx context.Context, cfg *config.Config) (portsrepo.LedgerCache, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initialize redis ledger cache: %w", err)
		}
		a.Redis = client
		a.logger.Info("Ledger cache backed by redis", slog.Duration("ttl", cfg.LedgerCacheTTL))
		return cache.NewRedisLedgerCache(client, cfg.LedgerCacheTTL, a.logger), nil
	case config.CacheBackendNone:
		a.logger.Info("Ledger cache disabled")
		return cache.NoopLedgerCache{}, nil
	default:
		a.logger.Info("Ledger cache in memory", slog.Int("size", cfg.LedgerCacheSize), slog.Duration("ttl", cfg.LedgerCacheTTL))
		return cache.NewMemoryLedgerCache(cfg.LedgerCacheSize, cfg.LedgerCacheTTL), nil
	}
}

// MigrateUp applies pending migrations over the sqlx handle.
func (a *App) MigrateUp(migrationsPath string) (bool, error) {
	return database.MigrateUp(a.SQL.DB, migrationsPath, a.logger)
}

// Close releases the handles in reverse order of acquisition.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	if a.SQL != nil {
		if err := a.SQL.Close(); err != nil {
			a.logger.Error("Error closing sqlx handle", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.Pool)
}
