package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkpulse/internal/config"
	"parkpulse/internal/dataset"
	"parkpulse/internal/services"
	"parkpulse/pkg/contracts/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Security: config.SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: []string{"http://localhost:8080"},
		},
	}
}

// testApplication assembles an Application around a small fixture dataset,
// bypassing config loading and the global logger.
func testApplication(t *testing.T) *Application {
	t.Helper()

	dir := t.TempDir()
	for _, ride := range domain.AllRides {
		csv := "datetime,SPOSTMIN\n2021-07-04 09:00:00,25\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.FileName(ride)), []byte(csv), 0o644))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	table, err := dataset.Load(context.Background(), dir, logger)
	require.NoError(t, err)

	app := &Application{
		Config:        testConfig(),
		Logger:        logger,
		Table:         table,
		WaitService:   services.NewWaitTimeService(table, logger),
		HealthService: services.NewHealthService("test", table, nil, logger),
		FrontendFS: fstest.MapFS{
			"index.html":        {Data: []byte("<!doctype html><title>dashboard</title>")},
			"assets/app.js":     {Data: []byte("// app")},
			"assets/styles.css": {Data: []byte("body{}")},
		},
	}
	app.setupRouter()
	app.createServer()
	return app
}

func TestRouterAPIEndpoints(t *testing.T) {
	app := testApplication(t)

	tests := []struct {
		name   string
		target string
	}{
		{name: "charts", target: "/api/charts?ride=all&date=2021-07-04"},
		{name: "rides", target: "/api/rides"},
		{name: "summary", target: "/api/data/summary"},
		{name: "export", target: "/api/data/export?date=2021-07-04"},
		{name: "health", target: "/api/health"},
		{name: "readiness", target: "/api/health/ready"},
		{name: "liveness", target: "/api/health/live"},
		{name: "version", target: "/api/version"},
		{name: "metrics", target: "/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			app.Router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRouterChartsPayload(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/charts?ride=dinosaur&date=2021-07-04", nil)
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var data domain.ChartData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
	require.Len(t, data.Hourly, 1)
	require.Len(t, data.Hourly[0].Points, 1)
	assert.Equal(t, domain.HourlyPoint{Hour: 9, AvgWait: 25}, data.Hourly[0].Points[0])
}

func TestRouterServesFrontend(t *testing.T) {
	app := testApplication(t)

	t.Run("index", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		app.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "dashboard")
	})

	t.Run("asset MIME types", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/assets/app.js", nil)
		app.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	})

	t.Run("missing asset", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/assets/nope.js", nil)
		app.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown path falls back to index", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/some/client/route", nil)
		app.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("unknown api path stays 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
		app.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouterSecurityHeaders(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rides", nil)
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
