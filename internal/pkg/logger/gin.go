package logger

import (
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 挂载访问日志与 panic 恢复，skipPaths 不记录访问日志
func SetupGin(r *gin.Engine, skipPaths ...string) {
	r.Use(AccessLog(skipPaths...))
	r.Use(gin.CustomRecovery(recoverWithLog))
}

// AccessLog 每个请求一条 GIN_ACCESS，4xx 为 Warn，5xx 为 Error
func AccessLog(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		if _, ok := skip[path]; ok {
			return
		}

		status := c.Writer.Status()
		level := log.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = log.LevelError
		case status >= http.StatusBadRequest:
			level = log.LevelWarn
		}

		log.Log(c.Request.Context(), level, "GIN_ACCESS",
			log.String("client_ip", c.ClientIP()),
			log.String("method", c.Request.Method),
			log.String("path", path),
			log.String("route", c.FullPath()),
			log.Int("status", status),
			log.Int("size", c.Writer.Size()),
			log.Duration("latency", time.Since(start)),
		)
	}
}

func recoverWithLog(c *gin.Context, err any) {
	log.ErrorContext(c.Request.Context(), "Panic recovered",
		log.String("path", c.Request.URL.Path),
		log.Any("err", err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"status":  http.StatusInternalServerError,
		"message": "internal server error",
	})
}
