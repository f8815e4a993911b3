package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parkpulse/internal/config"
	"parkpulse/internal/dataset"
	apierrors "parkpulse/internal/errors"
	"parkpulse/internal/infrastructure"
	customMiddleware "parkpulse/internal/middleware"
	"parkpulse/internal/services"
	handlers "parkpulse/internal/transport/http"
	"parkpulse/internal/validation"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Table         *dataset.Table
	WaitService   *services.WaitTimeService
	HealthService *services.HealthService
	Logger        *slog.Logger
	FrontendFS    fs.FS
}

// NewApplication creates a new application instance with dependency
// injection. The five ride datasets are loaded and unified before the
// server is constructed; a dataset that cannot be loaded is fatal.
func NewApplication(frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	app := &Application{
		Config:     cfg,
		Logger:     logger,
		FrontendFS: frontendFS,
	}

	if err := app.initializeServices(context.Background(), paths); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices loads the unified table and builds the service layer
// on top of it.
func (a *Application) initializeServices(ctx context.Context, paths *config.Paths) error {
	dataDir := a.Config.GetDataDir()
	a.Logger.InfoContext(ctx, "Loading ride datasets", slog.String("data_dir", dataDir))

	if err := validation.NewDataDirValidator(a.Logger).ValidateDataDirectory(dataDir); err != nil {
		return fmt.Errorf("data directory check failed: %w", err)
	}

	table, err := dataset.Load(ctx, dataDir, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to load wait time datasets: %w", err)
	}
	a.Table = table

	a.WaitService = services.NewWaitTimeService(table, a.Logger)
	a.HealthService = services.NewHealthService(config.AppVersion, table, paths, a.Logger)
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.Metrics)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	a.setupAPIRoutes(r)
	a.setupFrontendRoutes(r)

	// Prometheus scrape endpoint, deliberately outside the API group.
	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	chartHandler := handlers.NewChartHandler(a.WaitService, a.Logger, errorHandler)
	dataHandler := handlers.NewDataHandler(a.WaitService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout))
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/charts", chartHandler.GetCharts)
		r.Get("/rides", chartHandler.GetRides)
		r.Mount("/data", dataHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.GetVersion)
	})
}

// setupFrontendRoutes serves the embedded dashboard frontend.
func (a *Application) setupFrontendRoutes(r chi.Router) {
	if a.FrontendFS == nil {
		a.Logger.Warn("Frontend filesystem not available, dashboard UI disabled")
		return
	}

	r.Route("/assets", func(r chi.Router) {
		r.Use(customMiddleware.Compress(5))
		r.Get("/*", a.serveStaticAsset)
	})
	r.Get("/favicon.ico", a.serveFrontendFile("favicon.ico"))
	r.Get("/", a.serveIndex)

	// Unmatched non-API paths fall back to the dashboard page.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasPrefix(req.URL.Path, "/api") || strings.HasPrefix(req.URL.Path, "/assets") {
			http.NotFound(w, req)
			return
		}
		a.serveIndex(w, req)
	})
}

// serveIndex serves the dashboard page.
func (a *Application) serveIndex(w http.ResponseWriter, r *http.Request) {
	file, err := a.FrontendFS.Open("index.html")
	if err != nil {
		a.Logger.ErrorContext(r.Context(), "Failed to open index.html",
			slog.String("error", err.Error()))
		http.Error(w, "Frontend not available", http.StatusServiceUnavailable)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	io.Copy(w, file)
}

// serveStaticAsset serves an embedded asset with the right MIME type; the
// embedded filesystem does not carry extensions' content types itself.
func (a *Application) serveStaticAsset(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")

	file, err := a.FrontendFS.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".js":
		w.Header().Set("Content-Type", "application/javascript")
	case ".css":
		w.Header().Set("Content-Type", "text/css")
	case ".svg":
		w.Header().Set("Content-Type", "image/svg+xml")
	case ".png":
		w.Header().Set("Content-Type", "image/png")
	case ".ico":
		w.Header().Set("Content-Type", "image/x-icon")
	case ".woff2":
		w.Header().Set("Content-Type", "font/woff2")
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")

	io.Copy(w, file)
}

// serveFrontendFile serves a specific file from the embedded frontend
func (a *Application) serveFrontendFile(filename string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := a.FrontendFS.Open(filename)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer file.Close()

		w.Header().Set("Cache-Control", "public, max-age=86400")
		io.Copy(w, file)
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts the HTTP server and opens the dashboard in the browser once
// the server answers its own health endpoint.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.Int("unified_rows", a.Table.Len()))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)
	a.Logger.InfoContext(ctx, "Application started", slog.String("address", url))

	go a.openDashboard(ctx, url)
	return nil
}

// openDashboard waits for the server to answer, then opens the browser.
// Failures are logged only; the dashboard stays reachable manually.
func (a *Application) openDashboard(ctx context.Context, url string) {
	healthURL := url + "/api/health"
	for i := 0; i < 10; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		resp, err := http.Get(healthURL)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				if err := openBrowser(url); err != nil {
					a.Logger.Warn("Failed to open browser",
						slog.String("error", err.Error()),
						slog.String("url", url))
					fmt.Printf("\n%s is running at %s\n\n", config.AppName, url)
				}
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	a.Logger.Warn("Server did not become ready for browser opening", slog.String("url", url))
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.ErrorContext(ctx, "Error closing log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}

// openBrowser opens the default browser to the specified URL
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
