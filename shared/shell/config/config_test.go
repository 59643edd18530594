package config

import (
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func Test_Load_Defaults(t *testing.T) {
	// act
	cfg, err := load(nil, envFrom(nil))

	// assert
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, defaultDSN, cfg.DSN)
	assert.Equal(t, defaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 14, cfg.Policy.LoanDays)
	assert.Equal(t, 7, cfg.Policy.ReservationDays)
	assert.Equal(t, 5, cfg.Policy.DefaultQuota)
	assert.Empty(t, cfg.CORSOrigins)
	assert.False(t, cfg.OTel)
	assert.Empty(t, cfg.OTelEndpoint)
}

func Test_Load_EnvironmentAndFlagOverride(t *testing.T) {
	// arrange
	env := envFrom(map[string]string{
		envDBDriver:     "pgx",
		envDBDSN:        "postgres://library@db/circulation",
		envLogLevel:     "debug",
		envLoanDays:     "21",
		envCORSOrigins:  "http://localhost:3000, https://library.example ,",
		envOTel:         "true",
		envOTelEndpoint: "collector:4317",
		envDBReplicaDSN: "postgres://library@replica/circulation",
	})

	// act
	cfg, err := load([]string{"-loan-days", "28", "-http-addr", ":9090"}, env)

	// assert
	require.NoError(t, err)
	assert.Equal(t, DriverPGX, cfg.Driver)
	assert.Equal(t, "postgres://library@db/circulation", cfg.DSN)
	assert.Equal(t, "postgres://library@replica/circulation", cfg.ReplicaDSN)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 28, cfg.Policy.LoanDays)
	assert.Equal(t, []string{"http://localhost:3000", "https://library.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.OTel)
	assert.Equal(t, "collector:4317", cfg.OTelEndpoint)
}

func Test_Load_Error_WhenValuesAreInvalid(t *testing.T) {
	testCases := []struct {
		description string
		env         map[string]string
	}{
		{"unknown driver", map[string]string{envDBDriver: "oracle"}},
		{"non-numeric loan days", map[string]string{envLoanDays: "two weeks"}},
		{"zero quota", map[string]string{envDefaultQuota: "0"}},
		{"unknown log level", map[string]string{envLogLevel: "chatty"}},
		{"replica without pgx", map[string]string{envDBReplicaDSN: "postgres://replica"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			_, err := load(nil, envFrom(tc.env))

			// assert
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func Test_SQLiteDSN_AddsEngineSettings(t *testing.T) {
	// act
	dsn, err := SQLiteDSN("/tmp/circulation.db")

	// assert
	require.NoError(t, err)
	base, rawQuery, found := strings.Cut(dsn, "?")
	require.True(t, found)
	assert.Equal(t, "file:/tmp/circulation.db", base)

	query, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	assert.Equal(t, "immediate", query.Get("_txlock"))
	assert.Contains(t, query["_pragma"], "journal_mode(WAL)")
	assert.Contains(t, query["_pragma"], "busy_timeout(5000)")
	assert.Contains(t, query["_pragma"], "foreign_keys(1)")
}

func Test_SQLiteDSN_KeepsExplicitSettings(t *testing.T) {
	// act
	dsn, err := SQLiteDSN("file:test.db?_txlock=exclusive&_pragma=foreign_keys(0)")

	// assert
	require.NoError(t, err)
	query, err := url.ParseQuery(strings.SplitN(dsn, "?", 2)[1])
	require.NoError(t, err)
	assert.Equal(t, "exclusive", query.Get("_txlock"))
	assert.Contains(t, query["_pragma"], "foreign_keys(0)")
	assert.NotContains(t, query["_pragma"], "foreign_keys(1)")
}

func Test_SQLiteDSN_FillsInEachMissingPragma(t *testing.T) {
	// act
	dsn, err := SQLiteDSN("file:test.db?_pragma=cache_size(-2000)&_pragma=Journal_Mode(DELETE)")

	// assert
	require.NoError(t, err)
	query, err := url.ParseQuery(strings.SplitN(dsn, "?", 2)[1])
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"cache_size(-2000)",
		"Journal_Mode(DELETE)",
		"busy_timeout(5000)",
		"foreign_keys(1)",
	}, query["_pragma"])
}

func Test_SQLiteDSN_RejectsMalformedParameters(t *testing.T) {
	// act
	_, err := SQLiteDSN("file:test.db?_pragma=%zz")

	// assert
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
