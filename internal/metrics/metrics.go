package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendCalls counts ZeroDB calls by operation and outcome
	BackendCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackboard_backend_calls_total",
			Help: "Total number of ZeroDB calls",
		},
		[]string{"operation", "outcome"},
	)

	// BackendCallDuration measures ZeroDB call duration
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hackboard_backend_call_duration_seconds",
			Help:    "ZeroDB call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CacheHits counts the number of cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hackboard_cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	// CacheMisses counts the number of cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hackboard_cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	// WorkflowRuns counts workflow executions by workflow and outcome phase.
	// Successful runs are recorded with phase "ok".
	WorkflowRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hackboard_workflow_runs_total",
			Help: "Total number of workflow executions by failure phase",
		},
		[]string{"workflow", "phase"},
	)
)

// ObserveBackendCall records one ZeroDB call
func ObserveBackendCall(operation, outcome string, start time.Time) {
	BackendCalls.WithLabelValues(operation, outcome).Inc()
	BackendCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
