package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rosterd/rosterd/pkg/logger"
	"github.com/sethvargo/go-retry"
)

const fallbackPingTimeout = 10 * time.Second

// RedisInterface defines the minimal interface needed by cache operations.
// This allows both real redis.Client and mock implementations to be used.
type RedisInterface interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Close() error
}

// RedisCache implements Cache on top of a Redis client.
type RedisCache struct {
	client  RedisInterface
	enabled bool
}

// NewRedis connects a Redis client from the provided configuration and wraps
// it in a RedisCache. Connectivity is verified with a bounded retry.
func NewRedis(ctx context.Context, cfg *Config) (*RedisCache, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config is required")
	}
	client, err := buildRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = fallbackPingTimeout
	}
	if err := pingRedis(ctx, client, timeout); err != nil {
		client.Close()
		return nil, err
	}
	logger.FromContext(ctx).With(
		"cache_driver", "redis",
		"host", cfg.Host,
		"port", cfg.Port,
		"db", cfg.DB,
	).Info("Cache initialized")
	return NewRedisCache(client, cfg.Enabled), nil
}

// NewRedisCache wraps an existing client. Useful for tests.
func NewRedisCache(client RedisInterface, enabled bool) *RedisCache {
	return &RedisCache{client: client, enabled: enabled}
}

// buildRedisClient configures the Redis client from the provided config.
func buildRedisClient(cfg *Config) (redis.UniversalClient, error) {
	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing Redis URL: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}), nil
}

// pingRedis validates connectivity within the configured timeout, retrying
// once on transient failure.
func pingRedis(ctx context.Context, client redis.UniversalClient, timeout time.Duration) error {
	backoff := retry.WithMaxRetries(1, retry.NewConstant(timeout))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return retry.RetryableError(fmt.Errorf("pinging Redis server (timeout=%s): %w", timeout, err))
		}
		return nil
	})
}

// HealthCheck verifies the connection is alive.
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: health check failed: %w", err)
	}
	return nil
}

// Close shuts down the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get retrieves a value from the cache.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	if !c.enabled {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Warn("cache get failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

// Set adds a value to the cache with the specified expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if !c.enabled {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn("cache set failed", "key", key, "error", err)
	}
}

// DeleteByPrefix removes all keys with the given prefix using SCAN to avoid
// blocking the server on large keyspaces. The whole iteration completes
// before any DEL is issued: deleting mid-scan can invalidate the cursor and
// skip keys, leaving stale entries behind for a TTL window.
func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) {
	if !c.enabled {
		return
	}
	log := logger.FromContext(ctx)
	var keys []string
	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			log.Warn("cache scan failed", "prefix", prefix, "error", err)
			return
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn("cache delete failed", "prefix", prefix, "error", err)
	}
}
