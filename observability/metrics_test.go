package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveGeneration(t *testing.T) {
	m := New()

	m.ObserveGeneration(20*time.Millisecond, -150.5, 2, map[string]int{"landed_correctly": 2, "crashed": 8})
	m.ObserveGeneration(10*time.Millisecond, 99000, 3, map[string]int{"landed_correctly": 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations))
	assert.Equal(t, 99000.0, testutil.ToFloat64(m.bestFitness))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.landedRoutes))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.outcomes.WithLabelValues("landed_correctly")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.outcomes.WithLabelValues("crashed")))
}

func TestRecordRequestAndHandler(t *testing.T) {
	m := New()
	m.RecordReset()
	m.RecordRequest(http.MethodPut, "/next", http.StatusOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "lander_solver_resets_total 1")
	assert.Contains(t, body, `lander_http_requests_total{method="PUT",route="/next",status="200"} 1`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGeneration(time.Second, 1, 1, map[string]int{"crashed": 1})
		m.RecordReset()
		m.RecordRequest(http.MethodGet, "/health", http.StatusOK)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
