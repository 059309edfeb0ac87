package metric

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	require.NotNil(t, registry.Metrics)
	require.NotNil(t, registry.PrometheusRegistry())

	// Counters start at zero and increment cleanly
	registry.Metrics.OperationsTotal.WithLabelValues("item", "success").Inc()
	registry.Metrics.BackendCallsTotal.WithLabelValues("FetchItem", "success").Add(2)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(registry.Metrics.OperationsTotal.WithLabelValues("item", "success")))
	assert.Equal(t, float64(2),
		testutil.ToFloat64(registry.Metrics.BackendCallsTotal.WithLabelValues("FetchItem", "success")))
}

func TestHandler(t *testing.T) {
	registry := NewRegistry()
	registry.Metrics.OperationsTotal.WithLabelValues("surveys", "success").Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	registry.Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "graphql_api_operations_total"), body)
}
