// Package metrics provides Prometheus metrics for the session-api service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsCreated tracks the total number of sessions created.
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_created_total",
			Help: "Total number of classroom sessions created",
		},
	)

	// SessionsJoined tracks the total number of join operations.
	SessionsJoined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_joined_total",
			Help: "Total number of participants joined into existing sessions",
		},
	)

	// SessionReads tracks DTO assembly reads.
	SessionReads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_reads_total",
			Help: "Total number of session DTO reads",
		},
	)

	// ProviderErrors tracks credential provider failures by provider name.
	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_provider_errors_total",
			Help: "Total number of credential provider call failures",
		},
		[]string{"provider"},
	)

	// ProviderCallDuration tracks external credential provider call latency.
	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "session_provider_call_duration_seconds",
			Help:    "Duration of external credential provider calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	// SweeperDeletes tracks sessions reclaimed by the expiry sweeper.
	SweeperDeletes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_sweeper_deletes_total",
			Help: "Total number of expired sessions reclaimed by the sweeper",
		},
	)

	// HTTPRequests tracks HTTP requests by method and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)
)

// RecordSessionCreated increments the session creation counter.
func RecordSessionCreated() {
	SessionsCreated.Inc()
}

// RecordSessionJoined increments the join counter.
func RecordSessionJoined() {
	SessionsJoined.Inc()
}

// RecordSessionRead increments the DTO read counter.
func RecordSessionRead() {
	SessionReads.Inc()
}

// RecordProviderError increments the failure counter for a provider.
func RecordProviderError(provider string) {
	ProviderErrors.WithLabelValues(provider).Inc()
}

// RecordRequest records an HTTP request metric.
func RecordRequest(method, status string) {
	HTTPRequests.WithLabelValues(method, status).Inc()
}
