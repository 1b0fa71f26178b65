package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// IncrWithExpiration 计数加一并保证 key 带过期时间
// INCR 与 TTL 在同一事务内执行；TTL 为 -1 说明此前 EXPIRE 未生效，此时补设，避免计数永不过期
func IncrWithExpiration(ctx context.Context, rdb redis.Cmdable, key string, expiration time.Duration) (int64, error) {
	pipe := rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	// go-redis 对 -1/-2 不做单位换算
	if ttl.Val() == -1 {
		if err := rdb.Expire(ctx, key, expiration).Err(); err != nil {
			return 0, err
		}
	}
	return incr.Val(), nil
}
