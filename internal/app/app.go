package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cpkcli/internal/config"
	apierrors "cpkcli/internal/errors"
	customMiddleware "cpkcli/internal/middleware"
	"cpkcli/internal/services"
	handlers "cpkcli/internal/transport/http"
)

// Version is the application version reported by the health endpoint.
const Version = "1.0.0"

// Application wires configuration, services and the HTTP router.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router chi.Router

	server *http.Server
}

// New builds the application from an already-loaded configuration and
// logger.
func New(cfg *config.Config, logger *slog.Logger) *Application {
	a := &Application{
		Config: cfg,
		Logger: logger,
	}
	a.setupRouter()
	return a
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	metrics := services.NewMetrics(registry)
	calcService := services.NewCalculationService(a.Logger, a.Config.Calculator, metrics)
	healthService := services.NewHealthService(Version, a.Logger)

	calcHandler := handlers.NewCalculateHandler(calcService, a.Logger, errorHandler, a.Config.Calculator.MaxUploadBytes)
	healthHandler := handlers.NewHealthHandler(healthService, a.Logger)

	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))

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

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(a.Config.Server.ReadTimeout))
		r.Get("/health", healthHandler.HealthCheck)
		r.Mount("/calculate", calcHandler.Routes())
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	a.Router = r
}

// Run starts the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	a.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			slog.Int("port", a.Config.Server.Port),
			slog.String("version", Version))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("server shutting down",
		slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
