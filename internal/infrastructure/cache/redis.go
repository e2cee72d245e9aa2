package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scamguard/internal/config"
	"scamguard/internal/domain/models"
	"scamguard/pkg/logger"
)

// RedisCache provides caching for analysis results and backs the rate
// limiter. All methods are safe to call on a nil receiver; they report a
// miss or allow the request, so the service runs unchanged without Redis.
type RedisCache struct {
	client    *redis.Client
	logger    *logger.Logger
	keyPrefix string
}

// NewRedisCache creates a new Redis cache client and verifies connectivity.
func NewRedisCache(cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{
		client:    client,
		logger:    log.WithComponent("redis-cache"),
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Ping checks Redis connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("redis not configured")
	}
	return c.client.Ping(ctx).Err()
}

// GetResult returns a cached analysis result, or nil on a miss.
func (c *RedisCache) GetResult(ctx context.Context, key string) *models.AnalysisResult {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("cache read failed")
		}
		return nil
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Warn().Err(err).Msg("failed to decode cached result")
		return nil
	}

	return &result
}

// SetResult stores an analysis result with the given TTL. Failures are
// logged and swallowed; caching is best-effort.
func (c *RedisCache) SetResult(ctx context.Context, key string, result *models.AnalysisResult, ttl time.Duration) {
	if c == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode result for cache")
		return
	}

	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed")
	}
}

// CheckRateLimit increments the counter for the identifier within the
// window and reports whether the request is allowed. Errors fail open.
func (c *RedisCache) CheckRateLimit(ctx context.Context, identifier string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return true, nil
	}

	key := fmt.Sprintf("%sratelimit:%s", c.keyPrefix, identifier)

	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("rate limit check failed: %w", err)
	}

	return incr.Val() <= int64(limit), nil
}

// ResultKey derives a stable cache key from the content and its type.
func ResultKey(contentType models.ContentType, content string) string {
	sum := sha256.Sum256([]byte(content))
	return fmt.Sprintf("analysis:%s:%s", contentType, hex.EncodeToString(sum[:16]))
}
