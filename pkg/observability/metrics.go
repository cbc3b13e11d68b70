// Package observability exports verification outcomes as Prometheus
// metrics. It implements ports.OutcomeObserver, so a Metrics value can be
// attached to any session; the serve mode wires it to a /metrics endpoint.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/treeline/pkg/domain"
)

// Metrics holds the collectors for one registry.
type Metrics struct {
	Queries    *prometheus.CounterVec
	Mismatches *prometheus.CounterVec
	Timeouts   *prometheus.CounterVec
	Latency    *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors. Pass
// prometheus.DefaultRegisterer for process-global metrics, or a private
// registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treeline",
			Name:      "queries_total",
			Help:      "Queries issued to the engine, by workload and result.",
		}, []string{"workload", "result"}),
		Mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treeline",
			Name:      "mismatches_total",
			Help:      "Queries where the engine disagreed with the reference model.",
		}, []string{"workload"}),
		Timeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "treeline",
			Name:      "timeouts_total",
			Help:      "Queries with no validity pulse within the poll bound.",
		}, []string{"workload"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "treeline",
			Name:      "query_latency_cycles",
			Help:      "Cycles from start pulse to validity pulse.",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}, []string{"workload"}),
	}
	reg.MustRegister(m.Queries, m.Mismatches, m.Timeouts, m.Latency)
	return m
}

// ObserveOutcome records one completed query.
func (m *Metrics) ObserveOutcome(workload string, out domain.QueryOutcome) {
	result := "pass"
	if !out.Pass {
		result = "fail"
	}
	m.Queries.WithLabelValues(workload, result).Inc()

	if out.TimedOut {
		m.Timeouts.WithLabelValues(workload).Inc()
		// A timeout on a tree the reference model resolves is also a
		// disagreement.
		if out.Expected.Valid {
			m.Mismatches.WithLabelValues(workload).Inc()
		}
		return
	}

	m.Latency.WithLabelValues(workload).Observe(float64(out.Latency))
	if out.Expected.Valid && out.Got != out.Expected.Action {
		m.Mismatches.WithLabelValues(workload).Inc()
	} else if !out.Expected.Valid {
		// The engine produced an action on a malformed tree.
		m.Mismatches.WithLabelValues(workload).Inc()
	}
}
