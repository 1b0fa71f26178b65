package ratelimit

import (
	"blogpessoal/internal/pkg/consts"
	rdbutil "blogpessoal/internal/pkg/redis"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter 固定窗口计数，多实例共享额度
type RedisLimiter struct {
	rdb    redis.Cmdable
	limit  int64
	window time.Duration
}

func NewRedisLimiter(rdb redis.Cmdable, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		limit:  int64(limit),
		window: window,
	}
}

func (s *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := rdbutil.IncrWithExpiration(ctx, s.rdb, consts.RateLimitKey+key, s.window)
	if err != nil {
		return false, err
	}
	return count <= s.limit, nil
}
