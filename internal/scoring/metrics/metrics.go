// Package metrics exposes Prometheus instrumentation for the scoring engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	requestsTotal       *prometheus.CounterVec
	failuresTotal       *prometheus.CounterVec
	attributionFailures *prometheus.CounterVec
	highRiskTotal       *prometheus.CounterVec
	duration            *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crisiswatch_scoring_requests_total",
			Help: "Scoring requests processed, by domain.",
		}, []string{"domain"}),
		failuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crisiswatch_scoring_failures_total",
			Help: "Scoring requests that produced a degraded result, by domain and reason.",
		}, []string{"domain", "reason"}),
		attributionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crisiswatch_scoring_attribution_failures_total",
			Help: "Scored requests shipped without top indicators, by domain.",
		}, []string{"domain"}),
		highRiskTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crisiswatch_scoring_high_risk_total",
			Help: "Scored requests flagged high risk, by domain.",
		}, []string{"domain"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crisiswatch_scoring_duration_seconds",
			Help:    "End to end scoring latency, by domain.",
			Buckets: prometheus.DefBuckets,
		}, []string{"domain"}),
	}
}

func (m *Metrics) IncrementScored(domain string) {
	m.requestsTotal.WithLabelValues(domain).Inc()
}

func (m *Metrics) IncrementFailure(domain, reason string) {
	m.failuresTotal.WithLabelValues(domain, reason).Inc()
}

func (m *Metrics) IncrementAttributionFailure(domain string) {
	m.attributionFailures.WithLabelValues(domain).Inc()
}

func (m *Metrics) IncrementHighRisk(domain string) {
	m.highRiskTotal.WithLabelValues(domain).Inc()
}

func (m *Metrics) ObserveDuration(domain string, d time.Duration) {
	m.duration.WithLabelValues(domain).Observe(d.Seconds())
}
