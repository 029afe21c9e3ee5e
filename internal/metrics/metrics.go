package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hpe_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hpe_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hpe_submissions_total",
			Help: "Contact form intake outcomes",
		},
		[]string{"result"}, // accepted|rejected|failed
	)

	StatusUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hpe_status_updates_total",
			Help: "Submission status changes by target status",
		},
		[]string{"status"},
	)

	StoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hpe_store_errors_total",
			Help: "Row store failures by operation",
		},
		[]string{"op"},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		SubmissionsTotal,
		StatusUpdatesTotal,
		StoreErrorsTotal,
	)
}
