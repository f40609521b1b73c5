// Package metrics provides Prometheus metrics for the omnibet service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects service metrics on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Refresh cycle
	RefreshTotal     *prometheus.CounterVec
	RefreshDuration  prometheus.Histogram
	SnapshotMatchups prometheus.Gauge
	RejectedMatchups *prometheus.CounterVec

	// Upstream
	UpstreamRequests *prometheus.CounterVec

	// Engine
	Evaluations *prometheus.CounterVec
}

// New creates and registers every collector
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		RefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnibet_refresh_total",
				Help: "Fetch cycles by outcome",
			},
			[]string{"status"},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "omnibet_refresh_duration_seconds",
				Help:    "Duration of a full fetch cycle",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
			},
		),
		SnapshotMatchups: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "omnibet_snapshot_matchups",
				Help: "Matchups in the current snapshot",
			},
		),
		RejectedMatchups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnibet_rejected_matchups_total",
				Help: "Matchups dropped before ranking",
			},
			[]string{"reason"},
		),
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnibet_upstream_requests_total",
				Help: "Requests to the odds source by sport and outcome",
			},
			[]string{"sport", "status"},
		),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "omnibet_evaluations_total",
				Help: "Matchup pages evaluated by sort key",
			},
			[]string{"sort"},
		),
	}

	registry.MustRegister(
		m.RefreshTotal,
		m.RefreshDuration,
		m.SnapshotMatchups,
		m.RejectedMatchups,
		m.UpstreamRequests,
		m.Evaluations,
	)

	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRefresh records the outcome of one fetch cycle
func (m *Metrics) RecordRefresh(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RefreshTotal.WithLabelValues(status).Inc()
	m.RefreshDuration.Observe(elapsed.Seconds())
}

// RecordSnapshot records the size of a newly published snapshot
func (m *Metrics) RecordSnapshot(matchups int) {
	if m == nil {
		return
	}
	m.SnapshotMatchups.Set(float64(matchups))
}

// RecordRejected counts matchups dropped for reason
func (m *Metrics) RecordRejected(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RejectedMatchups.WithLabelValues(reason).Add(float64(n))
}

func (m *Metrics) RecordUpstream(sport, status string) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(sport, status).Inc()
}

func (m *Metrics) RecordEvaluation(sort string) {
	if m == nil {
		return
	}
	m.Evaluations.WithLabelValues(sort).Inc()
}
