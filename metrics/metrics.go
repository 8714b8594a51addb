// Package metrics provides Prometheus metrics for the judging service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "judging"

	ScopePair = "pair"
	ScopeAll  = "all"
)

// Manager owns a dedicated registry and the service's collectors.
type Manager struct {
	registry *prometheus.Registry

	submissions          prometheus.Counter
	submissionsRejected  *prometheus.CounterVec
	recomputations       *prometheus.CounterVec
	recomputeDuration    *prometheus.HistogramVec
	leaderboardDuration  prometheus.Histogram
	leaderboardBroadcast prometheus.Counter
}

func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	auto := promauto.With(registry)

	return &Manager{
		registry: registry,
		submissions: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "submissions_total",
			Help:      "Score submissions written to the answer ledger.",
		}),
		submissionsRejected: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "submissions_rejected_total",
			Help:      "Score submissions rejected before or by the ledger, by reason.",
		}, []string{"reason"}),
		recomputations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregator",
			Name:      "recomputations_total",
			Help:      "Composite score recomputations by scope.",
		}, []string{"scope"}),
		recomputeDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "aggregator",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of composite score recomputations by scope.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scope"}),
		leaderboardDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "compute_duration_seconds",
			Help:      "Duration of leaderboard computations.",
			Buckets:   prometheus.DefBuckets,
		}),
		leaderboardBroadcast: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "broadcasts_total",
			Help:      "Leaderboard updates pushed to websocket subscribers.",
		}),
	}
}

func (m *Manager) IncSubmissions() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

func (m *Manager) IncSubmissionRejected(reason string) {
	if m == nil {
		return
	}
	m.submissionsRejected.WithLabelValues(reason).Inc()
}

func (m *Manager) ObserveRecompute(scope string, d time.Duration) {
	if m == nil {
		return
	}
	m.recomputations.WithLabelValues(scope).Inc()
	m.recomputeDuration.WithLabelValues(scope).Observe(d.Seconds())
}

func (m *Manager) ObserveLeaderboard(d time.Duration) {
	if m == nil {
		return
	}
	m.leaderboardDuration.Observe(d.Seconds())
}

func (m *Manager) IncLeaderboardBroadcast() {
	if m == nil {
		return
	}
	m.leaderboardBroadcast.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
