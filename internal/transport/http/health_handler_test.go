package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parkpulse/internal/services"
)

type mockHealthService struct {
	mock.Mock
}

func (m *mockHealthService) HealthCheck(ctx context.Context) services.HealthStatus {
	args := m.Called(ctx)
	return args.Get(0).(services.HealthStatus)
}

func (m *mockHealthService) ReadinessCheck(ctx context.Context) services.HealthStatus {
	args := m.Called(ctx)
	return args.Get(0).(services.HealthStatus)
}

func (m *mockHealthService) LivenessCheck(ctx context.Context) services.HealthStatus {
	args := m.Called(ctx)
	return args.Get(0).(services.HealthStatus)
}

func (m *mockHealthService) Version() map[string]interface{} {
	args := m.Called()
	return args.Get(0).(map[string]interface{})
}

func TestGetHealth(t *testing.T) {
	service := new(mockHealthService)
	service.On("HealthCheck", mock.Anything).Return(services.HealthStatus{Status: "ok", Version: "1.2.0"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	NewHealthHandler(service, testLogger()).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var status services.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
}

func TestGetReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		service := new(mockHealthService)
		service.On("ReadinessCheck", mock.Anything).Return(services.HealthStatus{Status: "ready"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		NewHealthHandler(service, testLogger()).Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready answers 503", func(t *testing.T) {
		service := new(mockHealthService)
		service.On("ReadinessCheck", mock.Anything).Return(services.HealthStatus{Status: "not_ready"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		NewHealthHandler(service, testLogger()).Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestGetLiveness(t *testing.T) {
	service := new(mockHealthService)
	service.On("LivenessCheck", mock.Anything).Return(services.HealthStatus{Status: "alive"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	NewHealthHandler(service, testLogger()).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetVersionEndpoint(t *testing.T) {
	service := new(mockHealthService)
	service.On("Version").Return(map[string]interface{}{"version": "1.2.0"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/version", nil)

	handler := NewHealthHandler(service, testLogger())
	http.HandlerFunc(handler.GetVersion).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.2.0", body["version"])
}
