package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveTool(t *testing.T) {
	m := NewMetrics()

	m.ObserveTool("build_layer_10_financial", true, 20*time.Millisecond, 4)
	m.ObserveTool("build_layer_10_financial", false, 5*time.Millisecond, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("build_layer_10_financial", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("build_layer_10_financial", "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.LayerRows.WithLabelValues("build_layer_10_financial")))
}

func TestObserveTool_NilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveTool("file_list", true, time.Millisecond, 0) })
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveTool("file_list", true, time.Millisecond, 0)

	handler := m.InstrumentHandler(m.Handler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "homolo_mcp_tool_calls_total"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("get", "200")))
}
