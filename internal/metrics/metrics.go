// Package metrics holds the prometheus collectors exposed at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

// Rollup sources, also sent as the X-Statistics-Source header
const (
	SourceLive  = "live"
	SourceCache = "cache"
	SourceEmpty = "empty"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry       *prometheus.Registry
	analysisCalls  *prometheus.CounterVec
	rollupRequests *prometheus.CounterVec
	draftsSwept    prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		analysisCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "essaycoach",
			Name:      "analysis_calls_total",
			Help:      "Essay analysis calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		rollupRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "essaycoach",
			Name:      "rollup_requests_total",
			Help:      "Statistics rollups served by source.",
		}, []string{"source"}),
		draftsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "essaycoach",
			Name:      "drafts_swept_total",
			Help:      "Abandoned drafts removed with their records by the sweeper.",
		}),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analysisCalls,
		m.rollupRequests,
		m.draftsSwept,
	)
	return m
}

func (m *Metrics) AnalysisCall(kind, outcome string) {
	if m == nil {
		return
	}
	m.analysisCalls.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) RollupServed(source string) {
	if m == nil {
		return
	}
	m.rollupRequests.WithLabelValues(source).Inc()
}

func (m *Metrics) DraftsSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.draftsSwept.Add(float64(n))
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
