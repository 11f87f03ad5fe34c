package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter - per-key rate limiting
type Limiter interface {
	Allow(key string) (bool, error)
	Reset(key string) error
}

// RedisLimiter uses Redis for distributed rate limiting
type RedisLimiter struct {
	client *redis.Client
	limit  int           // max requests per window
	window time.Duration // window size
}

// NewRedisLimiter - create a Redis-backed rate limiter
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether a request for the key is within the limit
func (l *RedisLimiter) Allow(key string) (bool, error) {
	ctx := context.Background()

	// INCR + EXPIRE sliding window
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr error: %w", err)
	}

	// First request in the window sets the TTL
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis expire error: %w", err)
		}
	}

	if count > int64(l.limit) {
		return false, nil
	}

	return true, nil
}

// Reset clears the counter for a key
func (l *RedisLimiter) Reset(key string) error {
	ctx := context.Background()
	redisKey := fmt.Sprintf("ratelimit:%s", key)
	return l.client.Del(ctx, redisKey).Err()
}

// MemoryLimiter - in-memory rate limiting for single-instance deployments
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewMemoryLimiter - create an in-memory rate limiter
func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	return &MemoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether a request for the key is within the limit
func (l *MemoryLimiter) Allow(key string) (bool, error) {
	l.mu.Lock()
	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow(), nil
}

// Reset drops the limiter for a key
func (l *MemoryLimiter) Reset(key string) error {
	l.mu.Lock()
	delete(l.limiters, key)
	l.mu.Unlock()
	return nil
}

// Cleanup drops all limiters. Call periodically to bound memory.
func (l *MemoryLimiter) Cleanup() {
	l.mu.Lock()
	l.limiters = make(map[string]*rate.Limiter)
	l.mu.Unlock()
}
