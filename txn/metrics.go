package txn

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "offerhub"
	subsystem        = "txn"
)

var (
	invocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "invocations_total",
			Help:      "Total number of contract invocations by method, kind and outcome",
		},
		// kind: read/write, outcome: success/error
		[]string{"method", "kind", "outcome"},
	)

	invocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "invocation_duration_seconds",
			Help:      "Duration of contract invocations from build to result",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 180},
		},
		[]string{"method", "kind"},
	)

	stateTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "state_transitions_total",
			Help:      "Lifecycle states entered",
		},
		[]string{"state"},
	)

	pollAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "poll_attempts",
			Help:      "Status queries needed before a transaction reached finality",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		},
	)

	simulatedResourceFee = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "simulated_resource_fee",
			Help:      "Resource fee in base units reported by simulation",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 10),
		},
	)

	inFlightGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "in_flight",
			Help:      "Submitted transactions currently being polled",
		},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "errors_total",
			Help:      "Invocation failures by error kind",
		},
		[]string{"kind"},
	)
)
