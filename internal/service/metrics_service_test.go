package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordLogin(LoginOutcomeSuccess)
	m.RecordLogin(LoginOutcomeInvalid)
	m.RecordLogin(LoginOutcomeInvalid)
	m.RecordCacheLookup(true)
	m.ObserveHTTPRequest("GET", "/api/curriculum", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.logins.WithLabelValues(LoginOutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestTotal.WithLabelValues("GET", "/api/curriculum", "200")))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "auth_logins_total")
}

func TestNilMetricsServiceIsNoop(t *testing.T) {
	var m *MetricsService
	m.RecordLogin(LoginOutcomeError)
	m.RecordGuardRejection("forbidden")
	m.RecordImportRow(true)
	m.ObserveDBQuery("curriculum_list", time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
