// Package observability holds Prometheus metrics and OpenTelemetry tracing
// setup shared across the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProtectionDecisions counts decision-service verdicts by rule set and outcome.
	ProtectionDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_protection_decisions_total",
		Help: "Total number of protection-service decisions by rule set and outcome",
	}, []string{"rules", "outcome"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SessionsIssued counts session tokens issued by trigger (login, premium upgrade).
	SessionsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_sessions_issued_total",
		Help: "Total number of session tokens issued by trigger",
	}, []string{"trigger"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
