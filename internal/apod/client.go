// Package apod is the client for NASA's Astronomy Picture of the Day API.
//
// Fetch forwards the caller's query to the upstream endpoint with the
// server-held credential attached and hands the JSON payload back verbatim:
// an object for a single date, an array for ranges and counts. Every call is
// a fresh round-trip; nothing is cached or retried.
package apod

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tbourn/nasa-image-explorer/internal/config"
)

// maxBody caps how much of an upstream response is read. A 100-day range
// is well under this.
const maxBody = 8 << 20

// Query holds the optional upstream parameters. They are forwarded as given
// without cross-validation; empty fields are omitted.
type Query struct {
	Date      string
	Count     string
	StartDate string
	EndDate   string
}

func (q Query) values(apiKey string) url.Values {
	v := url.Values{}
	v.Set("api_key", apiKey)
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	if q.Count != "" {
		v.Set("count", q.Count)
	}
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	return v
}

// Client calls the APOD endpoint. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte] // nil unless enabled
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default traced client. The caller's client
// keeps its own timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a Client from cfg. The HTTP client is bounded by cfg.Timeout and
// traced with otelhttp. When cfg.BreakerEnabled is set, calls go through a
// circuit breaker that opens after 5 consecutive failures.
func New(cfg config.APODConfig, opts ...Option) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = config.DefaultAPODURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	if cfg.BreakerEnabled {
		c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        "apod-upstream",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// Client-side 4xx (bad date, bad key) says nothing about upstream health.
			IsSuccessful: func(err error) bool {
				var ue *UpstreamError
				if errors.As(err, &ue) && ue.Status >= 400 && ue.Status < 500 {
					return true
				}
				return err == nil
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			},
		})
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configured reports whether an upstream credential is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Fetch performs one upstream call for q and returns the raw JSON body.
//
// Errors:
//   - ErrMissingAPIKey when no credential is configured (no I/O happens).
//   - *UpstreamError for non-2xx answers, transport failures, timeouts and
//     an open breaker.
func (c *Client) Fetch(ctx context.Context, q Query) ([]byte, error) {
	if !c.Configured() {
		upstreamReqs.WithLabelValues(outcomeNoKey).Inc()
		return nil, ErrMissingAPIKey
	}

	if c.breaker == nil {
		return c.do(ctx, q)
	}
	body, err := c.breaker.Execute(func() ([]byte, error) { return c.do(ctx, q) })
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		upstreamReqs.WithLabelValues(outcomeRejected).Inc()
		return nil, &UpstreamError{Message: "upstream temporarily unavailable", Err: err}
	}
	return body, err
}

func (c *Client) do(ctx context.Context, q Query) ([]byte, error) {
	u := c.baseURL + "?" + q.values(c.apiKey).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build apod request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	upstreamLat.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, c.transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstreamReqs.WithLabelValues(outcomeError).Inc()
		msg := upstreamMessage(body)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &UpstreamError{Status: resp.StatusCode, Message: msg}
	}
	if !json.Valid(body) {
		upstreamReqs.WithLabelValues(outcomeError).Inc()
		return nil, &UpstreamError{Status: resp.StatusCode, Message: "invalid JSON from upstream"}
	}

	upstreamReqs.WithLabelValues(outcomeSuccess).Inc()
	return body, nil
}

// transportError wraps a failure that happened before a full response was
// read, flagging deadline overruns.
func (c *Client) transportError(err error) error {
	var ne net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout())
	if timeout {
		upstreamReqs.WithLabelValues(outcomeTimeout).Inc()
	} else {
		upstreamReqs.WithLabelValues(outcomeError).Inc()
	}
	msg := err.Error()
	var ue *url.Error
	if errors.As(err, &ue) {
		msg = ue.Err.Error()
	}
	return &UpstreamError{Message: msg, Timeout: timeout, Err: err}
}
