// Package app wires configuration, logging, metrics, services and routes
// into a runnable HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gscclean/internal/config"
	"gscclean/internal/infrastructure"
	customMiddleware "gscclean/internal/middleware"
	"gscclean/internal/services"
	handlers "gscclean/internal/transport/http"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Application represents the main application container
type Application struct {
	Config       *config.Config
	Router       *chi.Mux
	Server       *http.Server
	Logger       *slog.Logger
	CleanService *services.CleanService
	Metrics      *infrastructure.Metrics
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := infrastructure.NewLogger(cfg.Logging)
	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	metrics := infrastructure.NewMetrics(prometheus.DefaultRegisterer)
	cleanService := services.NewCleanService(logger, metrics)

	app := &Application{
		Config:       cfg,
		Logger:       logger,
		CleanService: cleanService,
		Metrics:      metrics,
	}
	app.Router = app.setupRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// setupRouter builds the middleware chain and mounts all routes.
func (app *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(app.Logger))
	r.Use(customMiddleware.Recoverer(app.Logger))
	if app.Config.Limits.RateLimitRPS > 0 {
		limiter := customMiddleware.NewRateLimiter(
			app.Config.Limits.RateLimitRPS,
			app.Config.Limits.RateLimitBurst,
			app.Logger)
		r.Use(limiter.Handler)
	}
	r.Use(render.SetContentType(render.ContentTypeJSON))

	cleanHandler := handlers.NewCleanHandler(
		app.CleanService,
		app.Logger,
		app.Config.Limits.MaxUploadBytes,
		app.Config.Limits.MaxPreviewRows)
	healthHandler := handlers.NewHealthHandler(Version)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/clean", cleanHandler.Routes())
		r.Get("/health", healthHandler.HealthCheck)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then drains in-flight requests within the configured timeout.
func (app *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("server listening", slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		app.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	app.Logger.Info("server stopped")
	return nil
}
