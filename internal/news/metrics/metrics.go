// Package metrics exposes Prometheus instrumentation for the news feature.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	demoServed    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crisiswatch_news_cache_hits_total",
			Help: "News requests served from the cache, by crisis type.",
		}, []string{"crisis_type"}),
		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crisiswatch_news_cache_misses_total",
			Help: "News requests that required a live feed fetch, by crisis type.",
		}, []string{"crisis_type"}),
		fetchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crisiswatch_news_fetch_failures_total",
			Help: "Live feed fetches that failed, by crisis type.",
		}, []string{"crisis_type"}),
		demoServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crisiswatch_news_demo_served_total",
			Help: "News responses answered with demo articles, by crisis type.",
		}, []string{"crisis_type"}),
	}
}

func (m *Metrics) IncrementCacheHit(crisisType string) {
	m.cacheHits.WithLabelValues(crisisType).Inc()
}

func (m *Metrics) IncrementCacheMiss(crisisType string) {
	m.cacheMisses.WithLabelValues(crisisType).Inc()
}

func (m *Metrics) IncrementFetchFailure(crisisType string) {
	m.fetchFailures.WithLabelValues(crisisType).Inc()
}
func (m *Metrics) IncrementDemoServed(crisisType string) {
	m.demoServed.WithLabelValues(crisisType).Inc()
}
