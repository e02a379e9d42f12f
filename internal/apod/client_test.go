package apod

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tbourn/nasa-image-explorer/internal/config"
)

func newUpstream(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_MissingKey_NoIO(t *testing.T) {
	var hits int32
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})

	base := testutil.ToFloat64(upstreamReqs.WithLabelValues(outcomeNoKey))
	c := New(config.APODConfig{BaseURL: srv.URL, Timeout: time.Second})
	if c.Configured() {
		t.Fatalf("client without key reports configured")
	}
	body, err := c.Fetch(context.Background(), Query{Date: "2024-05-01"})
	if !errors.Is(err, ErrMissingAPIKey) || body != nil {
		t.Fatalf("expected ErrMissingAPIKey, got body=%q err=%v", body, err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("upstream must not be called without a key")
	}
	if got := testutil.ToFloat64(upstreamReqs.WithLabelValues(outcomeNoKey)); got != base+1 {
		t.Fatalf("no_key counter = %v, want %v", got, base+1)
	}
}

func TestFetch_ForwardsQueryAndReturnsBodyVerbatim(t *testing.T) {
	const payload = `{"date":"2024-05-01","title":"Pillars","media_type":"image","url":"http://x/img.jpg"}`
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_key") != "k123" || q.Get("date") != "2024-05-01" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		for _, absent := range []string{"count", "start_date", "end_date"} {
			if _, ok := q[absent]; ok {
				t.Errorf("%s should be omitted when empty", absent)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})

	c := New(config.APODConfig{BaseURL: srv.URL, APIKey: "k123", Timeout: time.Second})
	body, err := c.Fetch(context.Background(), Query{Date: "2024-05-01"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != payload {
		t.Fatalf("body changed: %s", body)
	}
}

func TestFetch_RangeAndCount(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "2024-05-01" || q.Get("end_date") != "2024-05-03" || q.Get("count") != "3" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"date":"2024-05-01"},{"date":"2024-05-02"}]`))
	})

	c := New(config.APODConfig{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second})
	// Conflicting options are forwarded as-is.
	body, err := c.Fetch(context.Background(), Query{Count: "3", StartDate: "2024-05-01", EndDate: "2024-05-03"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.HasPrefix(string(body), "[") {
		t.Fatalf("expected array payload, got %s", body)
	}
}

func TestFetch_UpstreamErrorShapes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"nested", http.StatusForbidden, `{"error":{"code":"API_KEY_INVALID","message":"An invalid api_key was supplied."}}`, "An invalid api_key was supplied."},
		{"string", http.StatusBadRequest, `{"error":"bad date"}`, "bad date"},
		{"msg", http.StatusBadRequest, `{"code":400,"msg":"Date must be between Jun 16, 1995 and today."}`, "Date must be between Jun 16, 1995 and today."},
		{"plain", http.StatusBadGateway, `<html>oops</html>`, "Bad Gateway"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			c := New(config.APODConfig{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second})
			_, err := c.Fetch(context.Background(), Query{})
			var ue *UpstreamError
			if !errors.As(err, &ue) {
				t.Fatalf("expected *UpstreamError, got %T %v", err, err)
			}
			if ue.Status != tc.status || ue.Message != tc.want || ue.Timeout {
				t.Fatalf("got %+v, want status=%d message=%q", ue, tc.status, tc.want)
			}
		})
	}
}

func TestFetch_InvalidJSONSuccessIsUpstreamError(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	c := New(config.APODConfig{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second})
	var ue *UpstreamError
	if _, err := c.Fetch(context.Background(), Query{}); !errors.As(err, &ue) {
		t.Fatalf("expected *UpstreamError, got %v", err)
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	base := testutil.ToFloat64(upstreamReqs.WithLabelValues(outcomeTimeout))
	c := New(config.APODConfig{BaseURL: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond})
	_, err := c.Fetch(context.Background(), Query{})
	var ue *UpstreamError
	if !errors.As(err, &ue) || !ue.Timeout {
		t.Fatalf("expected timeout UpstreamError, got %v", err)
	}
	if got := testutil.ToFloat64(upstreamReqs.WithLabelValues(outcomeTimeout)); got != base+1 {
		t.Fatalf("timeout counter = %v, want %v", got, base+1)
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := New(config.APODConfig{BaseURL: addr, APIKey: "k", Timeout: time.Second})
	_, err := c.Fetch(context.Background(), Query{})
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Status != 0 || ue.Message == "" {
		t.Fatalf("expected transport UpstreamError, got %v", err)
	}
	if !strings.Contains(ue.Error(), "apod upstream") {
		t.Fatalf("unexpected error text: %q", ue.Error())
	}
}

func TestFetch_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int32
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	c := New(config.APODConfig{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second, BreakerEnabled: true})
	for i := 0; i < 5; i++ {
		if _, err := c.Fetch(context.Background(), Query{}); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	_, err := c.Fetch(context.Background(), Query{})
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Status != 0 {
		t.Fatalf("expected rejection by open breaker, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 5 {
		t.Fatalf("open breaker must not reach upstream: hits=%d", n)
	}
}

func TestFetch_BreakerIgnoresClientErrors(t *testing.T) {
	var hits int32
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":400,"msg":"bad date"}`))
	})

	c := New(config.APODConfig{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second, BreakerEnabled: true})
	for i := 0; i < 8; i++ {
		var ue *UpstreamError
		if _, err := c.Fetch(context.Background(), Query{Date: "1900-01-01"}); !errors.As(err, &ue) || ue.Status != http.StatusBadRequest {
			t.Fatalf("call %d: expected 400 UpstreamError, got %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&hits); n != 8 {
		t.Fatalf("4xx answers must not trip the breaker: hits=%d", n)
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(config.APODConfig{APIKey: "k"})
	if c.baseURL != config.DefaultAPODURL {
		t.Fatalf("baseURL = %q", c.baseURL)
	}
	if c.http.Timeout != 10*time.Second {
		t.Fatalf("timeout = %v", c.http.Timeout)
	}
	if c.breaker != nil {
		t.Fatalf("breaker should be off by default")
	}

	custom := &http.Client{Timeout: time.Second}
	if c := New(config.APODConfig{}, WithHTTPClient(custom)); c.http != custom {
		t.Fatalf("WithHTTPClient not applied")
	}
}

func TestUpstreamMessage(t *testing.T) {
	if got := upstreamMessage([]byte(`{"message":"fallback"}`)); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	if got := upstreamMessage([]byte(`{"error":{"code":"OVER_RATE_LIMIT"}}`)); got != "OVER_RATE_LIMIT" {
		t.Fatalf("got %q", got)
	}
	if got := upstreamMessage([]byte(`garbage`)); got != "" {
		t.Fatalf("got %q", got)
	}
}
