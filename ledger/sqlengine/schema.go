package sqlengine

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/ledger"
)

const (
	tableTitles       = "titles"
	tablePatrons      = "patrons"
	tableLoans        = "loans"
	tableReservations = "reservations"
	tableAuditLog     = "audit_log"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS titles (
		id               BIGSERIAL PRIMARY KEY,
		title            TEXT NOT NULL,
		author           TEXT NOT NULL,
		isbn             TEXT UNIQUE,
		publisher        TEXT,
		publication_year INTEGER,
		language         TEXT,
		category         TEXT,
		total_copies     INTEGER NOT NULL DEFAULT 1 CHECK (total_copies >= 0),
		search_key       TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS patrons (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		card_number   TEXT UNIQUE,
		affiliation   TEXT,
		phone         TEXT,
		registered_at TIMESTAMPTZ NOT NULL,
		approved      BOOLEAN NOT NULL DEFAULT FALSE,
		approved_at   TIMESTAMPTZ,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		quota         INTEGER NOT NULL DEFAULT 5 CHECK (quota >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id          BIGSERIAL PRIMARY KEY,
		patron_id   BIGINT NOT NULL REFERENCES patrons (id),
		title_id    BIGINT NOT NULL REFERENCES titles (id),
		reserved_at TIMESTAMPTZ NOT NULL,
		expires_at  TIMESTAMPTZ NOT NULL,
		status      TEXT NOT NULL CHECK (status IN ('active', 'fulfilled', 'cancelled', 'expired'))
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id             BIGSERIAL PRIMARY KEY,
		patron_id      BIGINT NOT NULL REFERENCES patrons (id),
		title_id       BIGINT NOT NULL REFERENCES titles (id),
		reservation_id BIGINT REFERENCES reservations (id),
		borrowed_at    TIMESTAMPTZ NOT NULL,
		due_at         TIMESTAMPTZ NOT NULL,
		status         TEXT NOT NULL CHECK (status IN ('open', 'returned')),
		returned_at    TIMESTAMPTZ,
		CHECK ((status = 'returned') = (returned_at IS NOT NULL))
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id          BIGSERIAL PRIMARY KEY,
		actor_type  TEXT NOT NULL CHECK (actor_type IN ('admin', 'patron', 'system')),
		actor_id    BIGINT,
		action      TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id   BIGINT,
		payload     TEXT,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS reservations_one_active_per_pair ON reservations (patron_id, title_id) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS reservations_queue ON reservations (title_id, status, reserved_at, id)`,
	`CREATE INDEX IF NOT EXISTS loans_title_status ON loans (title_id, status)`,
	`CREATE INDEX IF NOT EXISTS loans_patron_status ON loans (patron_id, status)`,
	`CREATE INDEX IF NOT EXISTS titles_title_author ON titles (title, author)`,
	`CREATE INDEX IF NOT EXISTS audit_log_entity ON audit_log (entity_type, entity_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS titles (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		title            TEXT NOT NULL,
		author           TEXT NOT NULL,
		isbn             TEXT UNIQUE,
		publisher        TEXT,
		publication_year INTEGER,
		language         TEXT,
		category         TEXT,
		total_copies     INTEGER NOT NULL DEFAULT 1 CHECK (total_copies >= 0),
		search_key       TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS patrons (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		card_number   TEXT UNIQUE,
		affiliation   TEXT,
		phone         TEXT,
		registered_at TEXT NOT NULL,
		approved      INTEGER NOT NULL DEFAULT 0,
		approved_at   TEXT,
		active        INTEGER NOT NULL DEFAULT 1,
		quota         INTEGER NOT NULL DEFAULT 5 CHECK (quota >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		patron_id   INTEGER NOT NULL REFERENCES patrons (id),
		title_id    INTEGER NOT NULL REFERENCES titles (id),
		reserved_at TEXT NOT NULL,
		expires_at  TEXT NOT NULL,
		status      TEXT NOT NULL CHECK (status IN ('active', 'fulfilled', 'cancelled', 'expired'))
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		patron_id      INTEGER NOT NULL REFERENCES patrons (id),
		title_id       INTEGER NOT NULL REFERENCES titles (id),
		reservation_id INTEGER REFERENCES reservations (id),
		borrowed_at    TEXT NOT NULL,
		due_at         TEXT NOT NULL,
		status         TEXT NOT NULL CHECK (status IN ('open', 'returned')),
		returned_at    TEXT,
		CHECK ((status = 'returned') = (returned_at IS NOT NULL))
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		actor_type  TEXT NOT NULL CHECK (actor_type IN ('admin', 'patron', 'system')),
		actor_id    INTEGER,
		action      TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id   INTEGER,
		payload     TEXT,
		created_at  TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS reservations_one_active_per_pair ON reservations (patron_id, title_id) WHERE status = 'active'`,
	`CREATE INDEX IF NOT EXISTS reservations_queue ON reservations (title_id, status, reserved_at, id)`,
	`CREATE INDEX IF NOT EXISTS loans_title_status ON loans (title_id, status)`,
	`CREATE INDEX IF NOT EXISTS loans_patron_status ON loans (patron_id, status)`,
	`CREATE INDEX IF NOT EXISTS titles_title_author ON titles (title, author)`,
	`CREATE INDEX IF NOT EXISTS audit_log_entity ON audit_log (entity_type, entity_id)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet. It is safe to call repeatedly.
func (e *Engine) EnsureSchema(ctx context.Context) error {
	for _, statement := range e.dialect.schemaDDL {
		if _, err := e.db.Exec(ctx, statement); err != nil {
			e.logError(ctx, logMsgSchemaMigrationFailed, err, logAttrQuery, statement)
			return errors.Join(ledger.ErrSchemaMigrationFailed, err)
		}
	}

	e.logOperation(ctx, logMsgSchemaReady, logAttrDialect, string(e.dialect.name))

	return nil
}
