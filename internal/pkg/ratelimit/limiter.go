package ratelimit

import "context"

// Limiter 按 key 判断请求是否放行
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
