// Package metrics exposes Prometheus collectors for billing activity and RPC latency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/bistro/pkg/models"
)

// Metrics holds the collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	billsCreated       prometheus.Counter
	billsFinalized     *prometheus.CounterVec
	billsReopened      prometheus.Counter
	persistenceFailed  *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
	suggestionRequests *prometheus.CounterVec
}

// New registers all collectors plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		billsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bistro",
			Name:      "bills_created_total",
			Help:      "Bills opened.",
		}),
		billsFinalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bistro",
			Name:      "bills_finalized_total",
			Help:      "Bills closed, by final status.",
		}, []string{"status"}),
		billsReopened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bistro",
			Name:      "bills_reopened_total",
			Help:      "Closed bills reopened by supervisor override.",
		}),
		persistenceFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bistro",
			Name:      "persistence_failures_total",
			Help:      "Failed write-through saves, by collection.",
		}, []string{"collection"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bistro",
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling time, by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
		suggestionRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bistro",
			Name:      "suggestion_requests_total",
			Help:      "AI suggestion calls, by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	m.registry.MustRegister(
		m.billsCreated,
		m.billsFinalized,
		m.billsReopened,
		m.persistenceFailed,
		m.rpcDuration,
		m.suggestionRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) BillCreated() {
	m.billsCreated.Inc()
}

func (m *Metrics) BillFinalized(status models.BillStatus) {
	m.billsFinalized.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) BillReopened() {
	m.billsReopened.Inc()
}

func (m *Metrics) PersistenceFailed(collection string) {
	m.persistenceFailed.WithLabelValues(collection).Inc()
}

// ObserveRPC records one handled call.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	m.rpcDuration.WithLabelValues(procedure, code).Observe(elapsed.Seconds())
}

// SuggestionRequested records one suggestion call. outcome is "ok" or an error class.
func (m *Metrics) SuggestionRequested(kind, outcome string) {
	m.suggestionRequests.WithLabelValues(kind, outcome).Inc()
}
