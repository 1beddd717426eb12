package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	authOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_auth_outcomes_total",
			Help: "Authentication outcomes partitioned by method and result.",
		},
		[]string{"method", "result"},
	)

	throttleBlocks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gate_throttle_blocks_total",
			Help: "Requests rejected by the failed-attempt throttle.",
		},
	)

	errorResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_error_responses_total",
			Help: "Error responses partitioned by error code.",
		},
		[]string{"code"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gate_request_duration_seconds",
			Help:    "Request latency partitioned by method and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(authOutcomes, throttleBlocks, errorResponses, requestDuration)
	})
}

func RecordAuthOutcome(method string, authenticated bool) {
	result := "anonymous"
	if authenticated {
		result = "authenticated"
	}
	authOutcomes.WithLabelValues(method, result).Inc()
}

func RecordThrottleBlock() {
	throttleBlocks.Inc()
}

func RecordErrorResponse(code string) {
	errorResponses.WithLabelValues(code).Inc()
}

func ObserveRequestDuration(method, status string, seconds float64) {
	requestDuration.WithLabelValues(method, status).Observe(seconds)
}
