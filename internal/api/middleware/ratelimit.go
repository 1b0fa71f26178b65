package middleware

import (
	"blogpessoal/internal/pkg/ratelimit"
	"blogpessoal/internal/pkg/response"
	"blogpessoal/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware 按客户端 IP 限流，限流器异常时放行
func RateLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.WarnContext(c.Request.Context(), "rate limiter unavailable", "err", err)
			c.Next()
			return
		}
		if !ok {
			response.Error(c, service.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
