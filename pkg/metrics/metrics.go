package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the ledger's operational metrics behind a dedicated
// prometheus registry.
type Collector struct {
	registry          *prometheus.Registry
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	gatewayErrors     *prometheus.CounterVec
	idempotencyHits   prometheus.Counter
	pendingReconciled *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		operationsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Ledger operations by type and outcome",
		}, []string{"operation", "outcome"}),
		operationDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Time taken to execute a ledger operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		gatewayErrors: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_gateway_errors_total",
			Help: "Provider-side failures by gateway",
		}, []string{"gateway"}),
		idempotencyHits: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "ledger_idempotency_hits_total",
			Help: "Operations short-circuited by an idempotency key replay",
		}),
		pendingReconciled: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_pending_reconciled_total",
			Help: "Stale pending transactions resolved by reconciliation, by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveOperation records one ledger operation with its duration and outcome.
func (c *Collector) ObserveOperation(operation string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.operationsTotal.WithLabelValues(operation, outcome).Inc()
	c.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// GatewayError records a provider-side failure.
func (c *Collector) GatewayError(gateway string) {
	c.gatewayErrors.WithLabelValues(gateway).Inc()
}

// IdempotencyHit records a replayed operation returning its prior result.
func (c *Collector) IdempotencyHit() {
	c.idempotencyHits.Inc()
}

// PendingReconciled records a stale pending transaction resolved to an outcome.
func (c *Collector) PendingReconciled(outcome string) {
	c.pendingReconciled.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry for mounting at /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
