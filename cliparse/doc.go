// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - DatabaseURL: sqlite path, Postgres DSN, or Redis URL (default: decide.db)
  - DatabaseType: sqlite, postgres, redis, or memory (default: sqlite)
  - Member: acting member id, required by commands that change a decision
  - Output: text or json (default: text)
  - Retries: retries on write contention (default: 3)
  - Verbose: debug logging
  - Args: the subcommand and its arguments

# CLI Flags

	-d        Database URL
	-t        Database type
	-m        Acting member
	-o        Output format
	-retries  Retries on write contention
	-v        Verbose logging
	-env      Env file to load (default: .env)

# Environment Variables

Flags fall back to environment variables:

	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	DECIDE_MEMBER  → -m
	DECIDE_OUTPUT  → -o
	DECIDE_RETRIES → -retries

The env file is loaded with godotenv before the fallbacks run. Variables
already set in the environment are not overwritten by the file. CLI flags
take precedence over both.

# Validation

ParseFlags returns an error if:

  - the database type or output format is unknown
  - postgres is selected without a URL
  - DECIDE_RETRIES is not a non-negative integer
*/
package cliparse
