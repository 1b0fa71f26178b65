package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLoggerHook 只记录失败与慢命令，限流每个请求都会打 Redis，正常命令不落日志
type RedisLoggerHook struct {
	slow time.Duration
}

func NewRedisLogger(slow time.Duration) *RedisLoggerHook {
	return &RedisLoggerHook{slow: slow}
}

func (h *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (h *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.record(ctx, cmd.Name(), commandArgs(cmd), 1, time.Since(start), err)
		return err
	}
}

func (h *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		h.record(ctx, "pipeline", "", len(cmds), time.Since(start), err)
		return err
	}
}

func (h *RedisLoggerHook) record(ctx context.Context, name, args string, count int, elapsed time.Duration, err error) {
	fields := []any{
		log.String("command", name),
		log.Int("cmd_count", count),
		log.Duration("latency", elapsed),
	}
	if args != "" {
		fields = append(fields, log.String("args", args))
	}

	switch {
	case err != nil && !ignorableRedisError(name, err):
		log.ErrorContext(ctx, "Redis Error", append(fields, log.Any("err", err))...)
	case elapsed > h.slow:
		log.WarnContext(ctx, "Redis Slow", fields...)
	}
}

// ignorableRedisError key 不存在，或旧版本服务端不支持 CLIENT SETINFO
func ignorableRedisError(name string, err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	return name == "client" && strings.Contains(err.Error(), "setinfo")
}

func commandArgs(cmd redis.Cmder) string {
	switch cmd.Name() {
	case "auth", "hello":
		return "[PROTECTED]"
	}
	return fmt.Sprint(cmd.Args()...)
}
