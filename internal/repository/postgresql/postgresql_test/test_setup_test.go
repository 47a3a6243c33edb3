package postgresql_test

import (
	"context"
	"fmt"
	"os"

	"github.com/teamcollab/teamcollab-backend-go/internal/pkg/database"
)

// Schema the repositories expect. The unique (user_id, date) constraint is what
// turns a racing second check-in into attendance.ErrAlreadyCheckedIn.
const schema = `
CREATE TABLE IF NOT EXISTS departments (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	name          TEXT NOT NULL,
	password_hash TEXT,
	role          TEXT NOT NULL DEFAULT 'MEMBER',
	department_id TEXT REFERENCES departments(id),
	slack_user_id TEXT UNIQUE,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	login_ip      TEXT,
	last_login    TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS attendances (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id),
	date       DATE NOT NULL,
	clock_in   TIMESTAMPTZ,
	clock_out  TIMESTAMPTZ,
	work_hours NUMERIC(5,2),
	status     TEXT NOT NULL DEFAULT 'present',
	notes      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT attendances_user_date_key UNIQUE (user_id, date),
	CONSTRAINT attendances_clock_order CHECK (clock_out IS NULL OR (clock_in IS NOT NULL AND clock_out > clock_in)),
	CONSTRAINT attendances_work_hours_iff_clock_out CHECK ((work_hours IS NULL) = (clock_out IS NULL))
);

CREATE TABLE IF NOT EXISTS visitor_logs (
	id          TEXT PRIMARY KEY,
	ip_address  TEXT NOT NULL,
	user_agent  TEXT NOT NULL,
	referrer    TEXT NOT NULL,
	page_url    TEXT NOT NULL,
	country     TEXT NOT NULL,
	city        TEXT NOT NULL,
	device_type TEXT NOT NULL,
	visited_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS visitor_logs_visited_at_idx ON visitor_logs (visited_at DESC);
`

// TestDatabaseSetup wraps the integration database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL; ok is false when it is unset
func NewTestDatabase(ctx context.Context) (setup *TestDatabaseSetup, ok bool, err error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, false, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, true, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if _, err := db.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, true, fmt.Errorf("failed to create schema: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, true, nil
}

// TruncateAllTables removes all rows
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"visitor_logs", "attendances", "users", "departments"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the pool
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
