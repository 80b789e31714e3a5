// Package metrics declares the Prometheus collectors exported on /metrics.
// Collectors are registered on the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks total HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks HTTP request duration.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CartMutationsTotal counts effective cart changes by operation (add, set_quantity, remove, clear).
	CartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Total number of cart mutations",
		},
		[]string{"operation"},
	)

	// CheckoutSubmissionsTotal counts submission attempts by outcome (succeeded, failed, rejected).
	CheckoutSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_checkout_submissions_total",
			Help: "Total number of checkout submissions",
		},
		[]string{"outcome"},
	)

	// OrderStageTransitionsTotal counts tracking transitions by resulting stage name.
	OrderStageTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_stage_transitions_total",
			Help: "Total number of order stage transitions",
		},
		[]string{"stage"},
	)

	// OrdersCancelledTotal counts cancelled orders.
	OrdersCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_cancelled_total",
			Help: "Total number of cancelled orders",
		},
	)

	// EventsPublishedTotal counts published order events by type and result (ok, error).
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_events_published_total",
			Help: "Total number of order lifecycle events published",
		},
		[]string{"type", "result"},
	)

	// WebSocketClients tracks connected WebSocket clients by channel (cart, order).
	WebSocketClients = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_websocket_clients",
			Help: "Number of connected WebSocket clients",
		},
		[]string{"channel"},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"circuit_name"},
	)

	// JobRunsTotal counts background job executions by job and result (ok, error).
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_job_runs_total",
			Help: "Total number of background job runs",
		},
		[]string{"job", "result"},
	)
)

// Result maps an error to the "ok"/"error" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
