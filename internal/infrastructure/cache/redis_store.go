package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shop/backend/internal/infrastructure/config"
)

const redisKeyPrefix = "upstream:"

// RedisStore implements Store backed by Redis, for deployments where
// multiple instances should share one upstream cache. Backend errors
// degrade to cache misses so upstream fetching keeps working when
// Redis is down.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed cache store from configuration
func NewRedisStore(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisStoreWithClient(client, ttl, logger)
}

// NewRedisStoreWithClient creates a store around an existing client.
// A zero ttl falls back to DefaultTTL and a nil logger is replaced
// with a no-op logger.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached value for key if present
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("Redis cache read failed",
				zap.String("key", key),
				zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores data under key with the configured TTL
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) {
	if err := s.client.Set(ctx, redisKeyPrefix+key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("Redis cache write failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Delete removes the entry for key if present
func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		s.logger.Warn("Redis cache delete failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

// Close releases the underlying Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)
