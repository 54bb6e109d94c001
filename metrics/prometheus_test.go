package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.IncResolve("pages", OutcomeFound)
	p.IncResolve("pages", OutcomeFound)
	p.IncResolve("posts", OutcomeNotFound)
	p.AddRoutes("projects", 4)
	p.ObserveBuildDuration(250 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.resolves.WithLabelValues("pages", "found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.resolves.WithLabelValues("posts", "not_found")))
	assert.Equal(t, 4.0, testutil.ToFloat64(p.routes.WithLabelValues("projects")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 3)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	assert.NotPanics(t, func() {
		p.IncResolve("pages", OutcomeFound)
		p.AddRoutes("pages", 1)
		p.ObserveBuildDuration(time.Second)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncResolve("pages", OutcomeFound)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `polysite_resolve_total{collection="pages",outcome="found"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncResolve("pages", OutcomeFound)
	r.AddRoutes("pages", 3)
	r.ObserveBuildDuration(time.Millisecond)
}
