package apod

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values for apod_upstream_requests_total.
const (
	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomeTimeout  = "timeout"
	outcomeRejected = "rejected"
	outcomeNoKey    = "no_key"
)

var (
	upstreamReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apod_upstream_requests_total",
			Help: "Total number of APOD upstream calls by outcome.",
		},
		[]string{"outcome"},
	)

	// Only calls that reached the network are observed.
	upstreamLat = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "apod_upstream_request_duration_seconds",
			Help:    "Duration of APOD upstream calls in seconds.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
	)
)

func init() {
	prometheus.MustRegister(upstreamReqs, upstreamLat)
}
