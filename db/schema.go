// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The aggregate lives in payload; the other columns exist for filtering and
// for reading the table by hand. Times are unix nanoseconds so the same DDL
// runs on sqlite and Postgres.
const schema = `
CREATE TABLE IF NOT EXISTS decision (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    creator_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'finalized')),
    blind_voting BOOLEAN NOT NULL DEFAULT FALSE,
    final_option_text TEXT,
    version BIGINT NOT NULL,
    created_unix_nano BIGINT NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decision_status ON decision(status);
CREATE INDEX IF NOT EXISTS idx_decision_created ON decision(created_unix_nano);
`
