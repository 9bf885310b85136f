// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles SQL connections, schema creation, and the SQL decision
repository.

# Connections

Open takes a database type and URL:

	conn, err := db.Open(ctx, db.TypeSQLite, "decide.db")
	conn, err := db.Open(ctx, db.TypePostgres, "postgres://localhost/decide?sslmode=disable")

sqlite uses modernc.org/sqlite (pure Go, no cgo) limited to one open
connection. Postgres uses github.com/lib/pq with a small pool.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - decision: one row per decision. The full aggregate (options, tallies,
    comments, discussion, ballots) is a JSON payload; id, status,
    blind_voting, final_option_text, and created_unix_nano are mirrored
    into columns for filtering.

# Indexes

  - decision.status
  - decision.created_unix_nano

# Optimistic Concurrency

SQLRepository.Update is a conditional UPDATE on (id, version). Zero rows
affected on an existing row means another writer got there first and the
call fails with store.ErrConflict.
*/
package db
