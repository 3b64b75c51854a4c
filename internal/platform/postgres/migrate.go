package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// statements create the schema at boot. Idempotent on purpose so restarts and
// parallel test databases need no migration tooling.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		address      TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at, id)`,
	`CREATE TABLE IF NOT EXISTS audit_events (
		id         UUID PRIMARY KEY,
		action     TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		actor      TEXT NOT NULL,
		request_id TEXT NOT NULL,
		at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_events_at ON audit_events (at DESC)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
