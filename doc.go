// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for decide, a command-line tool for
small groups reaching a shared decision.

A member creates a decision with two or more options and a set of members.
Members vote once each, react to options (like, concern, question), comment
on options, and talk in a decision-wide discussion. The creator finalizes by
choosing an option, which need not be the most voted one. With blind voting,
counts stay hidden from everyone until the decision is finalized.

# Running

Decisions live in a sqlite file by default:

	decide -m Sarah create -title "Weekend trip" -members Mike,Tom -blind Beach Mountains City
	decide -m Mike vote <decision> 2
	decide -m Sarah finalize <decision> 2
	decide -m Tom show <decision>

# Configuration

  - DATABASE_TYPE (-t): sqlite (default), postgres, redis, or memory
  - DATABASE_URL (-d): sqlite path (default decide.db), Postgres DSN, or Redis URL
  - DECIDE_MEMBER (-m): acting member
  - DECIDE_OUTPUT (-o): text or json
  - DECIDE_RETRIES (-retries): retries on write contention (default: 3)

A .env file in the working directory is loaded first.

# Architecture

  - decision: pure transitions, blind-voting gate, finalization policy
  - store: the decision authority (per-decision locking, compare-and-set)
  - db: sqlite/Postgres connections, schema, SQL repository
  - redisstore: Redis repository
  - handlers: subcommand handlers and text rendering
  - router: subcommand dispatch
  - middleware: logging, retries, JSON output, exit codes
  - models: domain and view types
  - cliparse: configuration parsing
  - clock, idgen: injected time and identifiers

See package documentation for each component.
*/
package main
