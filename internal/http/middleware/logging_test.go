package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf) // plain JSON lines
	return &buf
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/rid", func(c *gin.Context) {
		if v, ok := c.Get(requestIDKey); !ok || v == "" {
			t.Fatalf("requestID not set in context")
		}
		c.String(http.StatusOK, "ok")
	})

	// No header -> generated
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rid", nil))
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated %s header", requestIDHeader)
	}

	// Lowercase header -> propagated
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(strings.ToLower(requestIDHeader), "abc-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}

	// Oversized header -> replaced
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); len(got) > maxRequestIDLength || got == "" {
		t.Fatalf("oversized request id should be replaced, got %d bytes", len(got))
	}
}

func panicRouter(expose bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(RedactingLogger(RedactOptions{}))
	r.Use(Recovery(RecoveryOptions{ExposeDetail: expose}))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("after write")
	})
	return r
}

func TestRecovery_ExposeDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	w := httptest.NewRecorder()
	panicRouter(true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from Recovery, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["code"] != "internal_error" || body["message"] != "Internal server error" || body["error"] != "kaboom" {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["request_id"] == "" || body["request_id"] != w.Header().Get(requestIDHeader) {
		t.Fatalf("request id missing or mismatched: %v", body)
	}
	out := buf.String()
	if !strings.Contains(out, `"panic recovered"`) || !strings.Contains(out, `"request_id"`) {
		t.Fatalf("expected request-scoped panic log, got:\n%s", out)
	}
}

func TestRecovery_HidesDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	captureLogger(t)

	w := httptest.NewRecorder()
	panicRouter(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] != "Something went wrong" {
		t.Fatalf("panic detail must be hidden, got %v", body)
	}
	if strings.Contains(w.Body.String(), "kaboom") {
		t.Fatalf("panic value leaked: %s", w.Body.String())
	}
}

func TestRecovery_AfterWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	captureLogger(t)

	w := httptest.NewRecorder()
	panicRouter(true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/late", nil))
	if strings.Contains(w.Body.String(), "internal_error") {
		t.Fatalf("no envelope should be appended after a partial write: %q", w.Body.String())
	}
}

func TestLoggerFrom_FallbackAndRequestScoped(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	// Without RedactingLogger: fallback, never nil.
	r := gin.New()
	r.GET("/plain", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("fallback")
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain", nil))

	// With it: carries the request id.
	r = gin.New()
	r.Use(RequestID(), RedactingLogger(RedactOptions{}))
	r.GET("/scoped", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("scoped")
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Header.Set(requestIDHeader, "rid-42")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var scopedLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, `"message":"scoped"`) {
			scopedLine = line
		}
	}
	if !strings.Contains(buf.String(), `"message":"fallback"`) {
		t.Fatalf("fallback logger did not write:\n%s", buf.String())
	}
	if !strings.Contains(scopedLine, `"request_id":"rid-42"`) || !strings.Contains(scopedLine, `"path":"/scoped"`) {
		t.Fatalf("scoped log missing fields: %s", scopedLine)
	}
}

func TestTruncateAndAsString(t *testing.T) {
	if got := truncate("abcdef", 3); got != "abc…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("truncate disabled = %q", got)
	}
	if asString(42) != "" || asString("x") != "x" {
		t.Fatalf("asString mismatch")
	}
}
