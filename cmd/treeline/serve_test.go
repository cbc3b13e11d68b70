package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/treeline/internal/logging"
	"github.com/aretw0/treeline/pkg/adapters/memory"
	"github.com/aretw0/treeline/pkg/observability"
)

const smallTreeYAML = `
name: small
nodes:
  - threshold: 128
    op: lt
    left: 1
    right: 2
  - leaf: BUY
  - leaf: SELL
`

func newTestRouter(t *testing.T) (http.Handler, *observability.Metrics) {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	return newRouter(logging.NewNop(), metrics, registry, memory.NewStore()), metrics
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_Verify(t *testing.T) {
	router, metrics := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(smallTreeYAML))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tree":"small"`)
	assert.Contains(t, rec.Body.String(), `"passed":256`)

	// The session fed the metrics: 256 exhaustive queries, all passing.
	assert.Equal(t, 256.0,
		testutil.ToFloat64(metrics.Queries.WithLabelValues("exhaustive", "pass")))
}

func TestRouter_Verify_PersistsReport(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(smallTreeYAML))
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/reports/"), "got Location %q", location)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, location, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tree":"small"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), strings.TrimPrefix(location, "/reports/"))
}

func TestRouter_Reports_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Verify_RejectsInvalidDocument(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verify", strings.NewReader(`
nodes:
  - threshold: 10
    left: 9
    right: 9
  - leaf: BUY
`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid tree document")
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
