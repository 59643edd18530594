package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/shared/core"
)

const (
	envDBDriver        = "CIRCULATION_DB_DRIVER"
	envDBDSN           = "CIRCULATION_DB_DSN"
	envDBReplicaDSN    = "CIRCULATION_DB_REPLICA_DSN"
	envHTTPAddr        = "CIRCULATION_HTTP_ADDR"
	envLogLevel        = "CIRCULATION_LOG_LEVEL"
	envLoanDays        = "CIRCULATION_LOAN_DAYS"
	envReservationDays = "CIRCULATION_RESERVATION_DAYS"
	envDefaultQuota    = "CIRCULATION_DEFAULT_QUOTA"
	envCORSOrigins     = "CIRCULATION_CORS_ORIGINS"
	envOTel            = "CIRCULATION_OTEL"
	envOTelEndpoint    = "CIRCULATION_OTEL_ENDPOINT"

	defaultDriver   = DriverSQLite
	defaultDSN      = "file:circulation.db"
	defaultHTTPAddr = ":8080"
	defaultLogLevel = "info"
)

// Driver selects the database adapter.
type Driver string

const (
	DriverPGX    Driver = "pgx"
	DriverSQL    Driver = "sql"
	DriverSQLX   Driver = "sqlx"
	DriverSQLite Driver = "sqlite"
)

// ErrInvalidConfig is returned when a setting cannot be parsed or is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all service settings.
type Config struct {
	Driver      Driver
	DSN         string
	ReplicaDSN  string
	HTTPAddr    string
	LogLevel    slog.Level
	Policy      core.Policy
	CORSOrigins []string
	OTel        bool

	// OTelEndpoint is the OTLP gRPC collector address. Empty means traces go to stdout.
	OTelEndpoint string
}

// Load reads the environment and then applies flag overrides from args.
func Load(args []string) (Config, error) {
	return load(args, os.LookupEnv)
}

func load(args []string, lookupEnv func(string) (string, bool)) (Config, error) {
	env := func(key, fallback string) string {
		if v, ok := lookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	policy := core.DefaultPolicy()

	fs := flag.NewFlagSet("circulation", flag.ContinueOnError)
	var (
		driver          = fs.String("db-driver", env(envDBDriver, string(defaultDriver)), "database adapter: pgx, sql, sqlx or sqlite")
		dsn             = fs.String("db-dsn", env(envDBDSN, defaultDSN), "primary database DSN")
		replicaDSN      = fs.String("db-replica-dsn", env(envDBReplicaDSN, ""), "optional read replica DSN (pgx only)")
		httpAddr        = fs.String("http-addr", env(envHTTPAddr, defaultHTTPAddr), "HTTP listen address")
		logLevel        = fs.String("log-level", env(envLogLevel, defaultLogLevel), "log level: debug, info, warn or error")
		loanDays        = fs.String("loan-days", env(envLoanDays, strconv.Itoa(policy.LoanDays)), "loan length in days")
		reservationDays = fs.String("reservation-days", env(envReservationDays, strconv.Itoa(policy.ReservationDays)), "reservation length in days")
		defaultQuota    = fs.String("default-quota", env(envDefaultQuota, strconv.Itoa(policy.DefaultQuota)), "open-loan quota of new patrons")
		corsOrigins     = fs.String("cors-origins", env(envCORSOrigins, ""), "comma-separated allowed CORS origins")
		otelEnabled     = fs.String("otel", env(envOTel, "false"), "enable OpenTelemetry adapters")
		otelEndpoint    = fs.String("otel-endpoint", env(envOTelEndpoint, ""), "OTLP gRPC collector address")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	cfg := Config{
		DSN:          *dsn,
		ReplicaDSN:   *replicaDSN,
		HTTPAddr:     *httpAddr,
		CORSOrigins:  splitList(*corsOrigins),
		OTelEndpoint: *otelEndpoint,
	}

	var err error

	if cfg.Driver, err = parseDriver(*driver); err != nil {
		return Config{}, err
	}

	if cfg.LogLevel, err = parseLogLevel(*logLevel); err != nil {
		return Config{}, err
	}

	if policy.LoanDays, err = parsePositive("loan-days", *loanDays); err != nil {
		return Config{}, err
	}

	if policy.ReservationDays, err = parsePositive("reservation-days", *reservationDays); err != nil {
		return Config{}, err
	}

	if policy.DefaultQuota, err = parsePositive("default-quota", *defaultQuota); err != nil {
		return Config{}, err
	}

	cfg.Policy = policy

	if cfg.OTel, err = strconv.ParseBool(*otelEnabled); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, fmt.Errorf("otel: %w", err))
	}

	if cfg.ReplicaDSN != "" && cfg.Driver != DriverPGX {
		return Config{}, errors.Join(ErrInvalidConfig, errors.New("a replica DSN is only supported with the pgx driver"))
	}

	return cfg, nil
}

func parseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(s)); d {
	case DriverPGX, DriverSQL, DriverSQLX, DriverSQLite:
		return d, nil
	default:
		return "", errors.Join(ErrInvalidConfig, fmt.Errorf("unknown db driver %q", s))
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Join(ErrInvalidConfig, err)
	}

	return level, nil
}

func parsePositive(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Join(ErrInvalidConfig, fmt.Errorf("%s: %w", name, err))
	}

	if n <= 0 {
		return 0, errors.Join(ErrInvalidConfig, fmt.Errorf("%s must be positive, got %d", name, n))
	}

	return n, nil
}

func splitList(s string) []string {
	var items []string

	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
