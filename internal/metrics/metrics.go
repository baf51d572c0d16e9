// Package metrics exposes Prometheus collectors for the Splitly server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitly"

// Outcomes of a balance computation.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeInvariant = "invariant"
	OutcomeError     = "error"
)

// Metrics holds the application's collectors on a private registry, so several
// servers (or tests) can run in one process. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rpcInFlight         prometheus.Gauge
	rpcRequests         *prometheus.CounterVec
	rpcDuration         *prometheus.HistogramVec
	balanceComputations *prometheus.CounterVec
	suggestedTransfers  prometheus.Histogram
}

// New creates and registers all collectors, including the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight RPCs.",
		}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Total number of RPCs handled, by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of RPCs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"procedure"}),
		balanceComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "balances",
			Name:      "computations_total",
			Help:      "Total number of group balance computations, by outcome.",
		}, []string{"outcome"}),
		suggestedTransfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "balances",
			Name:      "suggested_transfers",
			Help:      "Number of transfers suggested per balance computation.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
	}

	m.registry.MustRegister(
		m.rpcInFlight,
		m.rpcRequests,
		m.rpcDuration,
		m.balanceComputations,
		m.suggestedTransfers,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RPCStarted marks an RPC as in flight. The returned func records its completion.
func (m *Metrics) RPCStarted(procedure string) func(code string) {
	if m == nil {
		return func(string) {}
	}
	start := time.Now()
	m.rpcInFlight.Inc()
	return func(code string) {
		m.rpcInFlight.Dec()
		m.rpcRequests.WithLabelValues(procedure, code).Inc()
		m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
	}
}

// RecordBalanceComputation counts one balance computation with the given outcome.
func (m *Metrics) RecordBalanceComputation(outcome string) {
	if m == nil {
		return
	}
	m.balanceComputations.WithLabelValues(outcome).Inc()
}

// ObserveSuggestedTransfers records how many transfers a computation suggested.
func (m *Metrics) ObserveSuggestedTransfers(n int) {
	if m == nil {
		return
	}
	m.suggestedTransfers.Observe(float64(n))
}
