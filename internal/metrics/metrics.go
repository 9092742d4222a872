// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cashflow"

var (
	// HTTPRequests counts handled requests by route template and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route template
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Projections counts computed views: "ledger" or "statement"
	Projections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projections_total",
		Help:      "Cashflow projections computed, by view.",
	}, []string{"view"})

	// ProjectionFailures counts views aborted because adjustments could not be read
	ProjectionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projection_failures_total",
		Help:      "Cashflow projections aborted, by view.",
	}, []string{"view"})

	// MalformedAdjustments counts records skipped because they failed to parse
	MalformedAdjustments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "malformed_adjustments_total",
		Help:      "Adjustments skipped because their value or dates failed to parse.",
	})

	// DigestRuns counts statement digest runs by result: "sent" or "failed"
	DigestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "digest_runs_total",
		Help:      "Monthly statement digest runs, by result.",
	}, []string{"result"})
)
