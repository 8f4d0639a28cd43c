package ratelimit

import (
	"context"
	"fmt"
	"time"

	drepo "KabuCard/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisWindow is a fixed-window limiter shared by every replica using the same Redis.
type RedisWindow struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRedisWindow allows limit calls per window for each key.
func NewRedisWindow(client *redis.Client, prefix string, limit int64, window time.Duration) *RedisWindow {
	if window <= 0 {
		window = time.Second
	}
	return &RedisWindow{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow increments the counter of the current window and compares it with the limit.
func (r *RedisWindow) Allow(ctx context.Context, key string) (bool, error) {
	k := r.windowKey(key)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis limiter: %w", err)
	}
	return incr.Val() <= r.limit, nil
}

// Close closes the Redis connection.
func (r *RedisWindow) Close() error {
	return r.client.Close()
}

func (r *RedisWindow) windowKey(key string) string {
	slot := r.now().UnixNano() / int64(r.window)
	return fmt.Sprintf("%s:rl:%s:%d", r.prefix, key, slot)
}

var _ drepo.Limiter = (*RedisWindow)(nil)
