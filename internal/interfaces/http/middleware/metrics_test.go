package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spicebox/packing-summary/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

// setupTestMeter sets up a test meter provider and reader.
func setupTestMeter(t *testing.T) (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})

	return mp, reader
}

// collectMetrics collects metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

// findMetricByName finds a metric by name in the collected metrics.
func findMetricByName(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHTTPMetrics_Disabled(t *testing.T) {
	router := newTestRouter(HTTPMetrics(HTTPMetricsConfig{Enabled: false}))

	assert.Equal(t, http.StatusOK, serve(router, "/test").Code)
}

func TestHTTPMetrics_NilMeterProvider(t *testing.T) {
	router := newTestRouter(HTTPMetrics(HTTPMetricsConfig{Enabled: true}))

	assert.Equal(t, http.StatusOK, serve(router, "/test").Code)
}

func TestHTTPMetrics_DisabledMeterProvider(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	router := newTestRouter(HTTPMetrics(HTTPMetricsConfig{Enabled: true, MeterProvider: mp}))

	assert.Equal(t, http.StatusOK, serve(router, "/test").Code)
}

func TestHTTPMetricsWithMeter_Disabled(t *testing.T) {
	mp, reader := setupTestMeter(t)

	router := newTestRouter(HTTPMetricsWithMeter(mp.Meter("http.server"), false))
	serve(router, "/test")

	rm := collectMetrics(t, reader)
	assert.Nil(t, findMetricByName(rm, "http_server_request_total"))
}

func TestHTTPMetricsWithMeter_RequestCounter(t *testing.T) {
	mp, reader := setupTestMeter(t)

	router := newTestRouter(HTTPMetricsWithMeter(mp.Meter("http.server"), true))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(router, "/test").Code)
	}

	rm := collectMetrics(t, reader)

	requestTotal := findMetricByName(rm, "http_server_request_total")
	require.NotNil(t, requestTotal, "http_server_request_total metric not found")

	sumData, ok := requestTotal.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected Sum data for counter")
	require.Len(t, sumData.DataPoints, 1)
	assert.Equal(t, int64(3), sumData.DataPoints[0].Value)

	route, ok := sumData.DataPoints[0].Attributes.Value(telemetry.AttrHTTPRoute)
	require.True(t, ok)
	assert.Equal(t, "/test", route.AsString())

	duration := findMetricByName(rm, "http_server_request_duration_seconds")
	require.NotNil(t, duration, "http_server_request_duration_seconds metric not found")
	histData, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histData.DataPoints, 1)
	assert.Equal(t, uint64(3), histData.DataPoints[0].Count)

	assert.NotNil(t, findMetricByName(rm, "http_server_response_size_bytes"))
	assert.NotNil(t, findMetricByName(rm, "http_server_active_requests"))
}

func TestHTTPMetricsWithMeter_StatusCodesAndUnmatchedRoutes(t *testing.T) {
	mp, reader := setupTestMeter(t)

	router := gin.New()
	router.Use(HTTPMetricsWithMeter(mp.Meter("http.server"), true))
	router.GET("/api/packing-summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	router.GET("/api/orders-view", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false})
	})

	for _, path := range []string{"/api/packing-summary", "/api/packing-summary", "/api/orders-view", "/app.js"} {
		serve(router, path)
	}

	rm := collectMetrics(t, reader)
	requestTotal := findMetricByName(rm, "http_server_request_total")
	require.NotNil(t, requestTotal)

	sumData, ok := requestTotal.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	byRoute := map[string]int64{}
	var total int64
	for _, dp := range sumData.DataPoints {
		route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
		byRoute[route.AsString()] += dp.Value
		total += dp.Value
	}

	assert.Equal(t, int64(4), total)
	assert.Equal(t, int64(2), byRoute["/api/packing-summary"])
	assert.Equal(t, int64(1), byRoute["/api/orders-view"])
	assert.Equal(t, int64(1), byRoute["unmatched"])
}
