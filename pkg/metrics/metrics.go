package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	// HTTPRequestsTotal counts handled requests by route template, so
	// /channel/alice and /channel/bob share a series.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter by route",
		},
		[]string{"path"},
	)
)

// Notification Metrics
var (
	// NotificationsPublished tracks notification tasks by type and status (ok/error)
	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_tasks_published_total",
			Help: "Notification tasks handed to the queue by type and status",
		},
		[]string{"type", "status"},
	)
)
