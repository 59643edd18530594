// Command circulation-loadgen puts steady borrow, return and reservation traffic on a library.
// The database is taken from the usual CIRCULATION_* environment; the flags shape the load.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/ledger/oteladapters"
	"github.com/AntonStoeckl/library-circulation-go/ledger/sqlengine"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell/config"
	"github.com/AntonStoeckl/library-circulation-go/shared/shell/httpapi"
)

const (
	defaultRate            = 30
	defaultScenarioWeights = "70,30" // lending, reserving
	serviceName            = "circulation-loadgen"
)

// Config shapes the generated load.
type Config struct {
	Rate          int
	LendingWeight int
	Observability bool
	Duration      time.Duration
}

func main() {
	if err := run(); err != nil {
		slog.Error("load generator failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	dbConfig, err := config.Load(nil)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: dbConfig.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		defer cancel()
	}

	observers := httpapi.Observers{Logger: logger}
	engineOptions := []sqlengine.Option{sqlengine.WithLogger(logger)}

	if cfg.Observability {
		providers, otelErr := config.NewObservabilityProviders(ctx, serviceName, "1.0.0", dbConfig.OTelEndpoint)
		if otelErr != nil {
			return otelErr
		}
		defer func() { _ = providers.Shutdown(context.Background()) }()

		observers.Metrics = oteladapters.NewMetricsCollector(providers.MeterProvider.Meter(serviceName))
		observers.Tracing = oteladapters.NewTracingCollector(providers.TracerProvider.Tracer(serviceName))
		engineOptions = append(engineOptions, sqlengine.WithMetrics(observers.Metrics), sqlengine.WithTracing(observers.Tracing))
	}

	engine, closeEngine, err := config.OpenEngine(ctx, dbConfig, engineOptions...)
	if err != nil {
		return err
	}
	defer closeEngine()

	handlers, err := httpapi.NewHandlers(engine, engine, dbConfig.Policy, observers)
	if err != nil {
		return err
	}

	loadGen := NewLoadGenerator(handlers, cfg, logger)
	if err = loadGen.Prepare(ctx); err != nil {
		return err
	}

	err = loadGen.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if stopErr := loadGen.Stop(shutdownCtx); stopErr != nil {
		logger.Warn("load generator did not drain", "error", stopErr)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	return err
}

func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("circulation-loadgen", flag.ContinueOnError)

	var (
		rate          = fs.Int("rate", defaultRate, "scenarios per second")
		weights       = fs.String("scenario-weights", defaultScenarioWeights, "comma-separated weights for lending,reserving")
		observability = fs.Bool("observability-enabled", false, "enable OpenTelemetry metrics and tracing")
		duration      = fs.Duration("duration", 0, "stop after this long, 0 runs until interrupted")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *rate <= 0 {
		return Config{}, fmt.Errorf("rate must be positive, got %d", *rate)
	}

	lendingWeight, err := parseScenarioWeights(*weights)
	if err != nil {
		return Config{}, fmt.Errorf("invalid scenario weights %q: %w", *weights, err)
	}

	return Config{
		Rate:          *rate,
		LendingWeight: lendingWeight,
		Observability: *observability,
		Duration:      *duration,
	}, nil
}

// parseScenarioWeights returns the lending share in percent.
func parseScenarioWeights(s string) (int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected 2 weights, got %d", len(parts))
	}

	weights := make([]int, 2)
	for i, part := range parts {
		weight, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, err
		}
		if weight < 0 {
			return 0, fmt.Errorf("weight %d is negative", weight)
		}
		weights[i] = weight
	}

	total := weights[0] + weights[1]
	if total == 0 {
		return 0, errors.New("weights must not both be zero")
	}

	return weights[0] * 100 / total, nil
}
