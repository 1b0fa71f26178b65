package logger

import (
	"io"
	log "log/slog"
	"os"
	"strings"
)

var LogWriter io.Writer = os.Stdout

// InitLogger 设置默认 slog，JSON 输出到 stdout 并附带 trace_id
func InitLogger(level string) {
	handler := log.NewJSONHandler(LogWriter, &log.HandlerOptions{Level: ParseLevel(level)})
	log.SetDefault(log.New(&ContextHandler{handler}))
}

// ParseLevel 未识别的级别按 info 处理
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
