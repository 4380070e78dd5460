// Package metrics exposes Prometheus instrumentation for the shell.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"healthmetrics/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "healthmetrics"

var (
	once sync.Once

	reportsComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_computed_total",
			Help:      "Count of health reports computed by BMI category.",
		},
		[]string{"category"},
	)

	inputsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inputs_rejected_total",
			Help:      "Count of compute requests rejected by validation, by field.",
		},
		[]string{"field"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method and status code.",
		},
		[]string{"method", "code"},
	)

	httpDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live in-memory sessions.",
		},
	)
)

// Register registers metrics with the default registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reportsComputed, inputsRejected, httpRequests, httpDuration, activeSessions)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Recorder feeds engine outcomes into the counters. The zero value is ready
// to use.
type Recorder struct{}

// ReportComputed counts a successful computation.
func (Recorder) ReportComputed(category domain.BMICategory) {
	reportsComputed.WithLabelValues(string(category)).Inc()
}

// InputRejected counts a validation failure.
func (Recorder) InputRejected(field string) {
	inputsRejected.WithLabelValues(field).Inc()
}

// ObserveHTTP records one served request. Methods outside the standard set
// are counted as "other".
func ObserveHTTP(method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(methodLabel(method), strconv.Itoa(status)).Inc()
	httpDuration.Observe(elapsed.Seconds())
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return "other"
}

// SetActiveSessions updates the live-session gauge.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
