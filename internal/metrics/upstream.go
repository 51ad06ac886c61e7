package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gallex",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds, including rate-limiter queueing",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint", "status"},
	)

	// TextCacheTotal counts text-cache lookups by outcome (hit, miss).
	TextCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gallex",
			Name:      "text_cache_total",
			Help:      "Text cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	// SkippedRecordsTotal counts malformed upstream records dropped during normalization.
	SkippedRecordsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gallex",
			Name:      "skipped_records_total",
			Help:      "Malformed upstream records skipped during normalization",
		},
	)
)

// RegisterDomainMetrics registers upstream and cache metrics explicitly (no init()).
func RegisterDomainMetrics() {
	prometheus.MustRegister(upstreamRequestDuration)
	prometheus.MustRegister(TextCacheTotal)
	prometheus.MustRegister(SkippedRecordsTotal)
}

// ObserveUpstream records one upstream round trip.
func ObserveUpstream(endpoint, status string, elapsed time.Duration) {
	upstreamRequestDuration.WithLabelValues(endpoint, status).Observe(elapsed.Seconds())
}
