package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

const keyPrefix = "portal"

// ListCache is a read-through cache of list responses, grouped per record
// kind so a single mutation invalidates every cached page of that kind.
// Cache failures are logged and the loader result is used directly.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewListCache builds the cache. A nil client or zero ttl disables caching.
func NewListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ListCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListCache{client: client, ttl: ttl, logger: logger}
}

func (c *ListCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// GetOrLoad returns the cached value for kind/key or stores the loader result.
func GetOrLoad[T any](ctx context.Context, c *ListCache, kind domain.RecordKind, key string, load func(context.Context) (T, error)) (T, error) {
	if !c.enabled() {
		return load(ctx)
	}

	field := key
	raw, err := c.client.HGet(ctx, bucket(kind), field).Bytes()
	switch {
	case err == nil:
		var cached T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("kind", string(kind)), zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("cache read failed", zap.String("kind", string(kind)), zap.Error(err))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("kind", string(kind)), zap.Error(err))
		return value, nil
	}
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, bucket(kind), field, encoded)
	pipe.Expire(ctx, bucket(kind), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("cache write failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	return value, nil
}

// Invalidate drops every cached entry of kind.
func (c *ListCache) Invalidate(ctx context.Context, kind domain.RecordKind) {
	if !c.enabled() {
		return
	}
	if err := c.client.Del(ctx, bucket(kind)).Err(); err != nil {
		c.logger.Warn("cache invalidation failed", zap.String("kind", string(kind)), zap.Error(err))
	}
}

func bucket(kind domain.RecordKind) string {
	return fmt.Sprintf("%s:list:%s", keyPrefix, kind)
}
