package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "folio"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loadDuration *prom.HistogramVec
	loadResults  *prom.CounterVec
	cacheLookups *prom.CounterVec
	watchEvents  *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loadDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of single content item loads",
			Buckets:   prom.DefBuckets,
		}, []string{"collection"}),
		loadResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "load_results_total",
			Help:      "Content item loads by result kind",
		}, []string{"collection", "kind"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Read-through cache lookups by outcome",
		}, []string{"collection", "outcome"}),
		watchEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_events_total",
			Help:      "Filesystem change events delivered by the watcher",
		}, []string{"collection", "type"}),
	}
	reg.MustRegister(pr.loadDuration, pr.loadResults, pr.cacheLookups, pr.watchEvents)
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(collection string, d time.Duration) {
	p.loadDuration.WithLabelValues(collection).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLoadResult(collection, kind string) {
	p.loadResults.WithLabelValues(collection, kind).Inc()
}

func (p *PrometheusRecorder) IncCacheLookup(collection string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	p.cacheLookups.WithLabelValues(collection, outcome).Inc()
}

func (p *PrometheusRecorder) IncWatchEvent(collection, eventType string) {
	p.watchEvents.WithLabelValues(collection, eventType).Inc()
}

var _ Recorder = (*PrometheusRecorder)(nil)
