// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swc_api_requests_total",
			Help: "Total number of API requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swc_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	StoreSessionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "swc_store_sessions_in_use",
			Help: "Record store sessions currently held by requests",
		},
	)

	StoreSessionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "swc_store_session_errors_total",
			Help: "Requests that could not acquire a record store session",
		},
	)
)

// RecordAPIRequest records one finished request. Unmatched routes share a single label.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
