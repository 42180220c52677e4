package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"planetary-server/internal/store"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMetrics_ObserveOperation(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.Store.ObserveOperation("planetary_bodies", "get", time.Millisecond, nil)
	m.Store.ObserveOperation("planetary_bodies", "get", time.Millisecond, fmt.Errorf("wrapped: %w", store.ErrNotFound))
	m.Store.ObserveOperation("planetary_bodies", "insert", time.Millisecond, store.ErrDuplicateKey)
	m.Store.ObserveOperation("planetary_bodies", "insert", time.Millisecond, errors.New("disk full"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Store.operationsTotal.WithLabelValues("planetary_bodies", "get", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Store.operationsTotal.WithLabelValues("planetary_bodies", "get", StatusNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Store.operationsTotal.WithLabelValues("planetary_bodies", "insert", StatusDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Store.operationsTotal.WithLabelValues("planetary_bodies", "insert", StatusError)))
}

func TestHTTPMetrics_UnmatchedRoute(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.HTTP.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	m.HTTP.ObserveRequest(http.MethodGet, "/api/planetary/bodies/{id}", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTP.requestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTP.requestsTotal.WithLabelValues(http.MethodGet, "/api/planetary/bodies/{id}", "200")))
}

func TestHandler_ServesRegistry(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	m.Store.ObserveOperation("planetary_systems", "list", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "planetary_store_operations_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
