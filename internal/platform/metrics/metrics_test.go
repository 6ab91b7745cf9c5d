package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTPRequest(t *testing.T) {
	reg := NewRegistry()
	reg.ObserveHTTPRequest(http.MethodGet, "/get_pets", http.StatusOK, 15*time.Millisecond)
	reg.ObserveHTTPRequest(http.MethodGet, "/get_pets", http.StatusOK, 5*time.Millisecond)
	reg.RecordRateLimited("/login")

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",path="/get_pets",status="200"} 2`))
	assert.True(t, strings.Contains(body, `http_rate_limited_total{path="/login"} 1`))

	families, err := reg.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	reg.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	reg.ObserveDBQuery("query", "pets", time.Millisecond)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
