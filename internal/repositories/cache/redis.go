package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// RedisLedgerCache shares ledger projections between server instances.
// Cache failures are logged and treated as misses.
type RedisLedgerCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ portsrepo.LedgerCache = (*RedisLedgerCache)(nil)

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisLedgerCache wraps an existing client. The caller keeps ownership of it.
func NewRedisLedgerCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisLedgerCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisLedgerCache{client: client, ttl: ttl, logger: logger}
}

func generationKey(orgID string) string {
	return fmt.Sprintf("ledger:gen:%s", orgID)
}

func (c *RedisLedgerCache) entryKey(ctx context.Context, orgID string, filter domain.LedgerFilter) (string, error) {
	gen, err := c.client.Get(ctx, generationKey(orgID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("ledger:%s:%d:%s", orgID, gen, filterKey(filter)), nil
}

// Get reads and decodes a cached projection. A miss returns the slot for the current
// generation; it is empty when the generation could not be read.
func (c *RedisLedgerCache) Get(ctx context.Context, orgID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, string, bool) {
	key, err := c.entryKey(ctx, orgID, filter)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to read ledger cache generation", slog.String("org_id", orgID), slog.String("error", err.Error()))
		return nil, "", false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, key, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to read ledger cache", slog.String("key", key), slog.String("error", err.Error()))
		return nil, key, false
	}

	var entries []domain.LedgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.WarnContext(ctx, "Dropping corrupt ledger cache entry", slog.String("key", key), slog.String("error", err.Error()))
		_ = c.client.Del(ctx, key)
		return nil, key, false
	}
	return entries, key, true
}

// Set encodes and stores a projection in slot with the configured TTL.
func (c *RedisLedgerCache) Set(ctx context.Context, slot string, entries []domain.LedgerEntry) {
	if slot == "" {
		return
	}
	data, err := json.Marshal(entries)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to encode ledger cache entry", slog.String("key", slot), slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, slot, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Failed to write ledger cache", slog.String("key", slot), slog.String("error", err.Error()))
	}
}

// Invalidate bumps the organization's generation. Old keys expire through their TTL.
func (c *RedisLedgerCache) Invalidate(ctx context.Context, orgID string) {
	if err := c.client.Incr(ctx, generationKey(orgID)).Err(); err != nil {
		c.logger.ErrorContext(ctx, "Failed to invalidate ledger cache", slog.String("org_id", orgID), slog.String("error", err.Error()))
	}
}
