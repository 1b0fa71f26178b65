package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestCORSMiddleware(t *testing.T) {
	r := newTestEngine(CORSMiddleware())

	t.Run("simple request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://front.example")
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("expected wildcard origin but got %q", got)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d but got %d", http.StatusOK, rec.Code)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://front.example")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status %d but got %d", http.StatusNoContent, rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-Custom" {
			t.Fatalf("expected requested headers to be echoed, got %q", got)
		}
	})
}

func TestTraceMiddleware(t *testing.T) {
	r := newTestEngine(TraceMiddleware())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Header().Get(TraceHeader) == "" {
		t.Fatal("expected generated trace id")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceHeader, "trace-123")
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get(TraceHeader); got != "trace-123" {
		t.Fatalf("expected trace id to be propagated, got %q", got)
	}
}

func TestTraceMiddleware_RejectsMalformedHeader(t *testing.T) {
	r := newTestEngine(TraceMiddleware())

	tests := []struct {
		name string
		in   string
	}{
		{name: "too long", in: strings.Repeat("a", maxTraceIDLen+1)},
		{name: "control chars", in: "abc\tdef"},
		{name: "json injection", in: `x","level":"ERROR`},
		{name: "spaces", in: "trace id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set(TraceHeader, tt.in)
			r.ServeHTTP(rec, req)

			got := rec.Header().Get(TraceHeader)
			if got == tt.in || got == "" {
				t.Fatalf("expected a generated trace id, got %q", got)
			}
			if len(got) != 36 {
				t.Fatalf("expected uuid trace id, got %q", got)
			}
		})
	}
}

type stubLimiter struct {
	allow bool
	err   error
	calls int
}

func (s *stubLimiter) Allow(context.Context, string) (bool, error) {
	s.calls++
	return s.allow, s.err
}

func TestRateLimitMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		limiter *stubLimiter
		want    int
	}{
		{name: "allowed", limiter: &stubLimiter{allow: true}, want: http.StatusOK},
		{name: "rejected", limiter: &stubLimiter{allow: false}, want: http.StatusTooManyRequests},
		{name: "limiter error fails open", limiter: &stubLimiter{err: errors.New("down")}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(RateLimitMiddleware(tt.limiter))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

			if rec.Code != tt.want {
				t.Fatalf("expected status %d but got %d", tt.want, rec.Code)
			}
			if tt.limiter.calls != 1 {
				t.Fatalf("expected limiter to be called once, got %d", tt.limiter.calls)
			}
		})
	}
}

func TestAuditMiddleware_KeepsBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuditMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := c.GetRawData()
		c.String(http.StatusOK, string(body))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"titulo":"Hello"}`))
	r.ServeHTTP(rec, req)

	if rec.Body.String() != `{"titulo":"Hello"}` {
		t.Fatalf("expected handler to read the original body, got %q", rec.Body.String())
	}
}

func TestAuditMiddleware_LargeBodyStaysIntact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuditMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := c.GetRawData()
		c.String(http.StatusOK, "%d", len(body))
	})

	payload := strings.Repeat("x", 3*maxAuditBody+7)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(payload)))

	if rec.Body.String() != strconv.Itoa(len(payload)) {
		t.Fatalf("expected handler to read %d bytes, got %s", len(payload), rec.Body.String())
	}
}

func TestPeekBody_ReadsOnlyPrefix(t *testing.T) {
	src := &countingReader{r: strings.NewReader(strings.Repeat("y", 10*maxAuditBody))}
	req := httptest.NewRequest(http.MethodPost, "/echo", src)

	prefix := peekBody(req)
	if len(prefix) != maxAuditBody {
		t.Fatalf("expected %d byte prefix, got %d", maxAuditBody, len(prefix))
	}
	if src.n > maxAuditBody {
		t.Fatalf("expected at most %d bytes read up front, got %d", maxAuditBody, src.n)
	}
	if got := truncateBody(prefix, -1); !strings.HasSuffix(got, "...[truncated]") {
		t.Fatalf("expected truncated marker, got suffix %q", got[len(got)-20:])
	}
}

type countingReader struct {
	r *strings.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
