package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-authgate/authcore/core"
)

// Ensure Metrics implements Recorder interface at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds the Prometheus collectors for the engine.
type Metrics struct {
	AuthAttemptsTotal *prometheus.CounterVec
	AuthDuration      *prometheus.HistogramVec
	MasqueradeTotal   *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Default returns the process-wide metrics instance, registering the
// collectors on first use.
func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = &Metrics{
			AuthAttemptsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "authcore_auth_attempts_total",
					Help: "Authentication aggregations by realm and outcome",
				},
				[]string{"realm", "outcome"},
			),
			AuthDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "authcore_auth_duration_seconds",
					Help:    "Time spent resolving the authentication provider chain",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"realm"},
			),
			MasqueradeTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "authcore_masquerade_total",
					Help: "Masquerade calls by outcome",
				},
				[]string{"outcome"},
			),
		}
	})
	return defaultMetrics
}

// RecordAuthAttempt records one authentication aggregation.
func (m *Metrics) RecordAuthAttempt(realm, outcome string, duration time.Duration) {
	m.AuthAttemptsTotal.WithLabelValues(realm, outcome).Inc()
	m.AuthDuration.WithLabelValues(realm).Observe(duration.Seconds())
}

// RecordMasquerade records one masquerade call.
func (m *Metrics) RecordMasquerade(outcome string) {
	m.MasqueradeTotal.WithLabelValues(outcome).Inc()
}
