package middleware

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter is a fixed-window counter shared by every server instance
// pointing at the same redis.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	fullKey := r.prefix + key

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(fullKey).Build()).AsInt64()
	if err != nil {
		return false, err
	}

	// First hit of a window starts its clock.
	if count == 1 {
		cmd := r.client.B().Pexpire().Key(fullKey).Milliseconds(r.window.Milliseconds()).Build()
		if err := r.client.Do(ctx, cmd).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}
