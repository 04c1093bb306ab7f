// Package breakerprom exposes circuit breaker state and activity as
// Prometheus metrics. The Collector reads a circuit's current state on
// scrape; Metrics counts events through the breaker's lifecycle hooks.
package breakerprom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/softfuse/breaker"
)

// Collector exports the current state and consecutive failure count of a set
// of circuits, labeled by circuit name. Register it with a
// prometheus.Registerer and it reads the circuits on every scrape.
type Collector struct {
	circuits []*breaker.Circuit

	stateDesc    *prometheus.Desc
	failuresDesc *prometheus.Desc
}

// NewCollector creates a Collector for the given circuits.
func NewCollector(circuits ...*breaker.Circuit) *Collector {
	return &Collector{
		circuits: circuits,
		stateDesc: prometheus.NewDesc(
			"circuit_breaker_state",
			"Current circuit breaker state (0=closed, 1=open, 2=half-open)",
			[]string{"name"},
			nil,
		),
		failuresDesc: prometheus.NewDesc(
			"circuit_breaker_consecutive_failures",
			"Current consecutive failure count",
			[]string{"name"},
			nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.stateDesc
	ch <- c.failuresDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, circuit := range c.circuits {
		ch <- prometheus.MustNewConstMetric(
			c.stateDesc, prometheus.GaugeValue,
			float64(circuit.State()), circuit.Name(),
		)
		ch <- prometheus.MustNewConstMetric(
			c.failuresDesc, prometheus.GaugeValue,
			float64(circuit.Failures()), circuit.Name(),
		)
	}
}

// Metrics holds event counters fed by a circuit's lifecycle hooks. One
// Metrics instance can serve any number of circuits; series are labeled by
// circuit name.
type Metrics struct {
	stateChanges *prometheus.CounterVec
	calls        *prometheus.CounterVec
	rejections   *prometheus.CounterVec
}

// NewMetrics creates the event counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stateChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_state_changes_total",
				Help: "Total circuit state transitions",
			},
			[]string{"name", "from", "to"},
		),
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_calls_total",
				Help: "Total executed calls by outcome",
			},
			[]string{"name", "status"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_rejections_total",
				Help: "Total calls rejected because the circuit was open",
			},
			[]string{"name"},
		),
	}
	reg.MustRegister(m.stateChanges, m.calls, m.rejections)
	return m
}

// OnStateChange returns a hook counting state transitions.
func (m *Metrics) OnStateChange() breaker.OnStateChangeFunc {
	return func(name string, from, to breaker.State) {
		m.stateChanges.WithLabelValues(name, from.String(), to.String()).Inc()
	}
}

// OnCall returns a hook counting executed calls by outcome.
func (m *Metrics) OnCall() breaker.OnCallFunc {
	return func(name string, _ breaker.State, err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.calls.WithLabelValues(name, status).Inc()
	}
}

// OnReject returns a hook counting open-circuit rejections.
func (m *Metrics) OnReject() breaker.OnRejectFunc {
	return func(name string) {
		m.rejections.WithLabelValues(name).Inc()
	}
}

// Options returns the breaker options wiring a circuit to these metrics.
func (m *Metrics) Options() []breaker.Option {
	return []breaker.Option{
		breaker.OnStateChange(m.OnStateChange()),
		breaker.OnCall(m.OnCall()),
		breaker.OnReject(m.OnReject()),
	}
}
