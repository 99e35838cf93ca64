// Package metrics provides Prometheus metrics for clickbait checks.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeSuccess labels checks that produced a verdict. Failed checks are
// labelled with their error kind.
const OutcomeSuccess = "success"

var (
	// ChecksTotal counts finished checks by outcome.
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clickbait",
			Name:      "checks_total",
			Help:      "Total number of clickbait checks",
		},
		[]string{"outcome"},
	)

	// CheckDuration measures end-to-end check duration.
	CheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clickbait",
			Name:      "check_duration_seconds",
			Help:      "Duration of clickbait checks in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)

	// CacheHitsTotal counts checks answered from the verdict cache.
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clickbait",
			Name:      "cache_hits_total",
			Help:      "Total number of checks served from the verdict cache",
		},
	)

	// CheckingEnabled reports the link checking mode (1 = on, 0 = off).
	CheckingEnabled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "clickbait",
			Name:      "checking_enabled",
			Help:      "Link checking mode (1 = enabled, 0 = disabled)",
		},
	)
)

// RecordCheck records one finished check.
func RecordCheck(outcome string, cached bool, duration time.Duration) {
	ChecksTotal.WithLabelValues(outcome).Inc()
	CheckDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if cached {
		CacheHitsTotal.Inc()
	}
}

// SetCheckingEnabled mirrors the link checking mode.
func SetCheckingEnabled(enabled bool) {
	if enabled {
		CheckingEnabled.Set(1)
		return
	}
	CheckingEnabled.Set(0)
}
