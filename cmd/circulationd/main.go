// Command circulationd serves the library circulation API over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/ledger/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell/httpapi"
)

const (
	serviceName     = "circulationd"
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("circulationd failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		observers     = httpapi.Observers{Logger: logger, ContextualLogger: logger}
		engineOptions = []sqlengine.Option{sqlengine.WithLogger(logger)}
		routerOptions = []httpapi.Option{
			httpapi.WithLogger(logger),
			httpapi.WithCORSOrigins(cfg.CORSOrigins...),
		}
	)

	if cfg.OTel {
		providers, otelErr := config.NewObservabilityProviders(ctx, serviceName, serviceVersion, cfg.OTelEndpoint)
		if otelErr != nil {
			return fmt.Errorf("failed to set up OpenTelemetry: %w", otelErr)
		}
		defer func() {
			if shutdownErr := providers.Shutdown(context.Background()); shutdownErr != nil {
				logger.Warn("OpenTelemetry shutdown failed", "error", shutdownErr)
			}
		}()

		metrics := oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(serviceName))
		tracing := oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(serviceName))
		contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(logger.Handler())

		observers.Metrics = metrics
		observers.Tracing = tracing
		observers.ContextualLogger = contextualLogger

		engineOptions = append(engineOptions,
			sqlengine.WithMetrics(metrics),
			sqlengine.WithTracing(tracing),
			sqlengine.WithContextualLogger(contextualLogger),
		)
		routerOptions = append(routerOptions, httpapi.WithOTelMiddleware(serviceName))
	}

	engine, closeEngine, err := config.OpenEngine(ctx, cfg, engineOptions...)
	if err != nil {
		return fmt.Errorf("failed to open the ledger: %w", err)
	}
	defer closeEngine()

	handlers, err := httpapi.NewHandlers(engine, engine, cfg.Policy, observers)
	if err != nil {
		return fmt.Errorf("failed to create handlers: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handlers, engine, routerOptions...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "driver", string(cfg.Driver))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		logger.Info("shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("stopped")

	return nil
}
