package sqlengine

import (
	"errors"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

func Test_IsPostgresConflict(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		expected    bool
	}{
		{"pgx serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"pgx deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"pgx unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"pq serialization failure", &pq.Error{Code: "40001"}, true},
		{"pq deadlock wrapped", errors.Join(ledger.ErrWritingFailed, &pq.Error{Code: "40P01"}), true},
		{"plain error", errors.New("connection reset"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, isPostgresConflict(tc.err))
		})
	}
}

func Test_IsSQLiteConflict_MatchesLockedMessage(t *testing.T) {
	assert.True(t, isSQLiteConflict(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.False(t, isSQLiteConflict(errors.New("UNIQUE constraint failed: titles.isbn")))
}

func Test_DialectFromDriverName(t *testing.T) {
	for driverName, expected := range map[string]Dialect{
		"postgres": DialectPostgres,
		"pgx":      DialectPostgres,
		"sqlite":   DialectSQLite,
		"SQLite3":  DialectSQLite,
	} {
		dialect, err := dialectFromDriverName(driverName)
		require.NoError(t, err)
		assert.Equal(t, expected, dialect, driverName)
	}

	_, err := dialectFromDriverName("mysql")
	assert.ErrorIs(t, err, ledger.ErrUnsupportedDialect)
}

func Test_SettingsFor_Error_WhenDialectIsUnknown(t *testing.T) {
	_, err := settingsFor(Dialect("oracle"))

	assert.ErrorIs(t, err, ledger.ErrUnsupportedDialect)
}

func Test_SQLiteDialect_RendersFixedWidthUTCTimestamps(t *testing.T) {
	// arrange
	settings, err := settingsFor(DialectSQLite)
	require.NoError(t, err)
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	// act
	sqlQuery, _, err := settings.builder.From(tableLoans).Where(goqu.C("due_at").Eq(at)).ToSQL()

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, "'2026-03-01T08:30:00.000000Z'")
}

func Test_ParseDBTime(t *testing.T) {
	expected := time.Date(2026, 3, 1, 8, 30, 0, 123456000, time.UTC)

	fromText, err := parseDBTime("2026-03-01T08:30:00.123456Z")
	require.NoError(t, err)
	assert.True(t, expected.Equal(*fromText))

	fromBytes, err := parseDBTime([]byte("2026-03-01T09:30:00.123456789+01:00"))
	require.NoError(t, err)
	assert.True(t, expected.Equal(*fromBytes), "truncated to microseconds and normalized to UTC")
	assert.Equal(t, time.UTC, fromBytes.Location())

	fromNil, err := parseDBTime(nil)
	require.NoError(t, err)
	assert.Nil(t, fromNil)

	_, err = parseDBTime(42)
	assert.Error(t, err)
}

func Test_SearchKey(t *testing.T) {
	testCases := []struct {
		input    []string
		expected string
	}{
		{[]string{"Les Misérables", "Victor Hugo"}, "les miserables victor hugo"},
		{[]string{"  L'Étranger ", "Albert CAMUS"}, "l etranger albert camus"},
		{[]string{"1984"}, "1984"},
		{[]string{"%_"}, ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, SearchKey(tc.input...))
	}
}
