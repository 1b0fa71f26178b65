package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
)

// maxAuditBody 单次记录的 body 上限
const maxAuditBody = 4096

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < maxAuditBody {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func truncate(s string) string {
	if len(s) > maxAuditBody {
		return s[:maxAuditBody] + "...[truncated]"
	}
	return s
}

// truncateBody 请求体只保留了前缀，长度不明或更长时标记截断
func truncateBody(prefix []byte, contentLength int64) string {
	if len(prefix) == maxAuditBody && contentLength != int64(maxAuditBody) {
		return string(prefix) + "...[truncated]"
	}
	return string(prefix)
}

// peekBody 只读取前 maxAuditBody 字节用于日志，并把已读部分拼回 body，handler 仍能读到完整请求
func peekBody(r *http.Request) []byte {
	prefix, _ := io.ReadAll(io.LimitReader(r.Body, maxAuditBody))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(prefix), r.Body), r.Body}
	return prefix
}

// AuditMiddleware 记录请求与响应，写操作附带 body
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var reqBody []byte
		if c.Request.Body != nil && c.Request.Method != http.MethodGet {
			reqBody = peekBody(c.Request)
		}

		path := c.Request.URL.Path
		if decoded, err := url.PathUnescape(path); err == nil {
			path = decoded
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", path),
			log.String("client_ip", c.ClientIP()),
			log.String("req_body", truncateBody(reqBody, c.Request.ContentLength)),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", truncate(w.body.String())),
		)
	}
}
