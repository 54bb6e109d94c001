package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	resolves      *prom.CounterVec
	routes        *prom.CounterVec
	buildDuration prom.Histogram
}

// NewPrometheusRecorder creates the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	p := &PrometheusRecorder{
		resolves: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "polysite",
			Name:      "resolve_total",
			Help:      "Slug resolutions by collection and outcome",
		}, []string{"collection", "outcome"}),
		routes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "polysite",
			Name:      "routes_generated_total",
			Help:      "Static routes generated by collection",
		}, []string{"collection"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "polysite",
			Name:      "build_duration_seconds",
			Help:      "Duration of a static build",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(p.resolves, p.routes, p.buildDuration)
	return p
}

func (p *PrometheusRecorder) IncResolve(collection string, outcome Outcome) {
	if p == nil {
		return
	}
	p.resolves.WithLabelValues(collection, string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddRoutes(collection string, n int) {
	if p == nil {
		return
	}
	p.routes.WithLabelValues(collection).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

// Handler exposes reg in the Prometheus text format.
func Handler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
