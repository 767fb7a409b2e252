package security

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a per-key call ceiling inside the current clock hour.
type RateLimiter interface {
	// Allow counts one call for the key and reports whether it stays within
	// the hourly limit.
	Allow(ctx context.Context, key string, limitPerHour int32) (bool, error)
}

type redisRateLimiter struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRateLimiter(rdb *redis.Client, prefix string) RateLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &redisRateLimiter{rdb: rdb, prefix: prefix}
}

// Allow uses a fixed window keyed by the UTC hour: INCR the counter, set its
// expiry on first increment, reject once the count exceeds the ceiling. The
// window resets itself when the hour rolls over.
func (l *redisRateLimiter) Allow(ctx context.Context, key string, limitPerHour int32) (bool, error) {
	window := time.Now().UTC().Format("2006010215")
	bucket := fmt.Sprintf("%s:%s:%s", l.prefix, key, window)

	count, err := l.rdb.Incr(ctx, bucket).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// Expire a little past the window edge so clock skew cannot drop an
		// active counter.
		l.rdb.Expire(ctx, bucket, time.Hour+time.Minute)
	}
	return count <= int64(limitPerHour), nil
}
