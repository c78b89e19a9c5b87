// Package metrics exposes the engine's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ExpensesCreated counts successfully recorded expenses.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expense_tracker_expenses_created_total",
		Help: "Number of expenses recorded.",
	})

	// SplitsRejected counts custom split sets rejected for not summing
	// to the expense amount.
	SplitsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expense_tracker_splits_rejected_total",
		Help: "Number of split sets rejected as unbalanced.",
	})

	// RequestDuration observes HTTP request latency by route and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "expense_tracker_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
