package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kaamsaathi-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss - key absent (or cache disabled)
var ErrCacheMiss = fmt.Errorf("cache miss")

// Cache - read-through cache interface
type Cache interface {
	Get(key string, dest interface{}) error
	Set(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error
}

// RedisCache implements Cache on Redis
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache - create a Redis cache with a key prefix
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// Get reads a cached value into dest
func (c *RedisCache) Get(key string, dest interface{}) error {
	ctx := context.Background()
	fullKey := c.prefix + key

	data, err := c.client.Get(ctx, fullKey).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		logger.Error("Redis get error",
			zap.String("key", fullKey),
			zap.Error(err),
		)
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Error("Cache unmarshal error",
			zap.String("key", fullKey),
			zap.Error(err),
		)
		return err
	}

	logger.Debug("Cache hit", zap.String("key", fullKey))
	return nil
}

// Set stores a value with a TTL
func (c *RedisCache) Set(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	fullKey := c.prefix + key

	data, err := json.Marshal(value)
	if err != nil {
		logger.Error("Cache marshal error",
			zap.String("key", fullKey),
			zap.Error(err),
		)
		return err
	}

	if err := c.client.Set(ctx, fullKey, data, ttl).Err(); err != nil {
		logger.Error("Redis set error",
			zap.String("key", fullKey),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// Delete removes a key
func (c *RedisCache) Delete(key string) error {
	ctx := context.Background()
	return c.client.Del(ctx, c.prefix+key).Err()
}

// NoopCache is used when Redis is not configured; every read is a miss
type NoopCache struct{}

func (NoopCache) Get(key string, dest interface{}) error {
	return ErrCacheMiss
}

func (NoopCache) Set(key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (NoopCache) Delete(key string) error {
	return nil
}
