package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/movie-gateway/internal/mocks"
	"github.com/jsamuelsen/movie-gateway/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHealthRouter(registry ports.HealthRegistry, info BuildInfo) *gin.Engine {
	handler := NewHealthHandler(HealthHandlerConfig{Registry: registry, BuildInfo: info})

	router := gin.New()
	handler.RegisterHealthRoutes(router.Group("/-"))

	return router
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("movie-gateway", "1.0.0", "abc123", "2026-01-15T10:00:00Z")

	assert.Equal(t, "movie-gateway", bi.Service)
	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2026-01-15T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestNewHealthHandler_DefaultsTimeout(t *testing.T) {
	handler := NewHealthHandler(HealthHandlerConfig{Registry: mocks.NewMockHealthRegistry(t)})

	assert.Equal(t, DefaultReadinessTimeout, handler.readinessTimeout)
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := serve(newHealthRouter(mocks.NewMockHealthRegistry(t), BuildInfo{}), "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp livenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name           string
		result         *ports.HealthResult
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "tmdb reachable",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{"tmdb": {Status: ports.HealthStatusHealthy}},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"healthy"`,
		},
		{
			name: "tmdb down",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"tmdb": {Status: ports.HealthStatusUnhealthy, Message: "upstream unavailable"},
				},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "upstream unavailable",
		},
		{
			name:           "no checks registered",
			result:         &ports.HealthResult{Status: ports.HealthStatusHealthy, Checks: map[string]*ports.CheckResult{}},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"healthy"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result).Once()

			w := serve(newHealthRouter(registry, BuildInfo{}), "/-/ready")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		})
	}
}

func TestHealthHandler_ReadinessHasDeadline(t *testing.T) {
	registry := mocks.NewMockHealthRegistry(t)
	registry.EXPECT().CheckAll(mock.Anything).
		RunAndReturn(func(ctx context.Context) *ports.HealthResult {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok, "readiness checks must be bounded")
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)

			return &ports.HealthResult{Status: ports.HealthStatusHealthy}
		}).Once()

	handler := NewHealthHandler(HealthHandlerConfig{Registry: registry, ReadinessTimeout: time.Second})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/ready", nil)

	handler.Readiness(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	info := BuildInfo{
		Service:   "movie-gateway",
		Version:   "1.2.3",
		Commit:    "def456",
		BuildTime: "2026-02-01T12:00:00Z",
		GoVersion: "go1.25.7",
	}

	w := serve(newHealthRouter(mocks.NewMockHealthRegistry(t), info), "/-/build")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, info, resp)
}

func TestHealthHandler_Metrics(t *testing.T) {
	w := serve(newHealthRouter(mocks.NewMockHealthRegistry(t), BuildInfo{}), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
