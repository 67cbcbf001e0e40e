package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// The pgx driver speaks the extended protocol, which takes one statement per
// Exec, so the schema is applied statement by statement.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS role (
        id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
        role_name   TEXT NOT NULL UNIQUE,
        created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS account (
        id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
        email         TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        role_id       UUID NOT NULL REFERENCES role (id),
        is_active     BOOLEAN NOT NULL DEFAULT TRUE,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS customer (
        id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
        first_name    TEXT NOT NULL,
        last_name     TEXT NOT NULL,
        date_of_birth TIMESTAMPTZ NOT NULL,
        account_id    UUID NOT NULL UNIQUE REFERENCES account (id) ON DELETE CASCADE,
        created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS password_reset_token (
        token      TEXT PRIMARY KEY,
        account_id UUID NOT NULL REFERENCES account (id) ON DELETE CASCADE,
        expires_at TIMESTAMPTZ NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
}

// Migrate applies the schema. Email uniqueness and reset-token uniqueness are
// enforced here rather than by application-level pre-checks.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
