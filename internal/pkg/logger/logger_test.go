package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	log "log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	gormlogger "gorm.io/gorm/logger"
)

// captureDefault 将默认 slog 指向 buf，测试结束后还原
func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(log.New(&ContextHandler{log.NewJSONHandler(&buf, &log.HandlerOptions{Level: log.LevelDebug})}))
	t.Cleanup(func() { log.SetDefault(prev) })
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to decode log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.LevelDebug,
		"WARN":    log.LevelWarn,
		"warning": log.LevelWarn,
		"error":   log.LevelError,
		"info":    log.LevelInfo,
		"":        log.LevelInfo,
		"verbose": log.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextHandler_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)}).With("component", "test")

	l.InfoContext(WithTraceID(context.Background(), "trace-abc"), "hello")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 log line but got %d", len(entries))
	}
	if entries[0][TraceIDKey] != "trace-abc" || entries[0]["component"] != "test" {
		t.Fatalf("expected trace_id and component in log line, got %v", entries[0])
	}
}

func TestTraceID_Missing(t *testing.T) {
	if got := TraceID(context.Background()); got != "" {
		t.Fatalf("expected empty trace id but got %q", got)
	}
}

func TestAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureDefault(t)

	r := gin.New()
	SetupGin(r, "/ping")
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	for _, path := range []string{"/ping", "/missing", "/panic"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(rec, req.WithContext(WithTraceID(req.Context(), "trace-xyz")))
		if path == "/panic" && rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected panic to be recovered as 500, got %d", rec.Code)
		}
	}

	levels := map[string]string{}
	for _, entry := range decodeLines(t, buf) {
		if entry["msg"] != "GIN_ACCESS" {
			continue
		}
		if entry[TraceIDKey] != "trace-xyz" {
			t.Fatalf("expected trace_id on access log, got %v", entry)
		}
		levels[entry["path"].(string)] = entry["level"].(string)
	}

	if _, ok := levels["/ping"]; ok {
		t.Fatal("expected /ping to be skipped")
	}
	if levels["/missing"] != "WARN" {
		t.Fatalf("expected WARN for 404, got %q", levels["/missing"])
	}
	if levels["/panic"] != "ERROR" {
		t.Fatalf("expected ERROR for 500, got %q", levels["/panic"])
	}
}

func TestSlogGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		begin   time.Time
		err     error
		wantMsg string
		wantLvl string
	}{
		{"ok", time.Now(), nil, "SQL SELECT", "DEBUG"},
		{"not found is not an error", time.Now(), gormlogger.ErrRecordNotFound, "SQL SELECT", "DEBUG"},
		{"error", time.Now(), errors.New("syntax error"), "SQL SELECT Error", "ERROR"},
		{"slow", time.Now().Add(-time.Second), nil, "SQL SELECT Slow", "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureDefault(t)
			l := NewGormLogger(200 * time.Millisecond)
			l.Trace(context.Background(), tt.begin, func() (string, int64) {
				return "select * from tb_postagens", 2
			}, tt.err)

			entries := decodeLines(t, buf)
			if len(entries) != 1 {
				t.Fatalf("expected 1 log line but got %d", len(entries))
			}
			if entries[0]["msg"] != tt.wantMsg || entries[0]["level"] != tt.wantLvl {
				t.Fatalf("got msg=%v level=%v", entries[0]["msg"], entries[0]["level"])
			}
		})
	}
}

func TestSlogGormLogger_Silent(t *testing.T) {
	buf := captureDefault(t)
	l := NewGormLogger(0).LogMode(gormlogger.Silent)
	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "select 1", 1 }, errors.New("boom"))

	if buf.Len() != 0 {
		t.Fatalf("expected no output in silent mode, got %q", buf.String())
	}
}

func TestRedisLoggerHook_Record(t *testing.T) {
	tests := []struct {
		name    string
		cmd     string
		elapsed time.Duration
		err     error
		wantMsg string
	}{
		{"fast ok", "incr", time.Millisecond, nil, ""},
		{"nil reply", "get", time.Millisecond, redis.Nil, ""},
		{"setinfo unsupported", "client", time.Millisecond, errors.New("ERR unknown subcommand 'setinfo'"), ""},
		{"error", "incr", time.Millisecond, errors.New("connection refused"), "Redis Error"},
		{"slow", "expire", time.Second, nil, "Redis Slow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureDefault(t)
			NewRedisLogger(100*time.Millisecond).record(context.Background(), tt.cmd, "", 1, tt.elapsed, tt.err)

			entries := decodeLines(t, buf)
			if tt.wantMsg == "" {
				if len(entries) != 0 {
					t.Fatalf("expected no log line, got %v", entries)
				}
				return
			}
			if len(entries) != 1 || entries[0]["msg"] != tt.wantMsg {
				t.Fatalf("expected %q, got %v", tt.wantMsg, entries)
			}
		})
	}
}

func TestCommandArgs_HidesAuth(t *testing.T) {
	cmd := redis.NewStatusCmd(context.Background(), "auth", "secret")
	if got := commandArgs(cmd); got != "[PROTECTED]" {
		t.Fatalf("expected protected args, got %q", got)
	}
}

func TestSetupGin_RecoversMiddlewarePanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureDefault(t)

	r := gin.New()
	SetupGin(r)
	r.Use(func(c *gin.Context) { panic("middleware boom") })
	r.GET("/postagens", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/postagens", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 but got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected json body, got %q", rec.Body.String())
	}
	if body["message"] != "internal server error" {
		t.Fatalf("unexpected body %v", body)
	}
	if !strings.Contains(buf.String(), "Panic recovered") {
		t.Fatal("expected panic to be logged")
	}
}
