// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router maps decide subcommands to handlers.

# Route Registration

NewRouter creates a Router with every command registered:

	r := router.NewRouter(s, cfg, clock.System{}, os.Stdin)
	err := r.Dispatch(ctx, os.Stdout, cfg.Args)

# Commands

Decision lifecycle:

	create [-title T] [-desc D] [-members a,b] [-blind] [-f file] <option>...
	show <decision>
	list [active|finalized]
	finalize <decision> <option>    - creator only

Voting:

	vote <decision> <option>        - one vote per member per decision
	react <decision> <option> <like|concern|question>

Discussion:

	comment <decision> <option> <text>
	discuss <decision> <text>

Results:

	recommend <decision>            - most voted option, hidden during blind voting

"help" prints the command list.

# Middleware

Every command is wrapped with middleware.WithLogging. Commands that change
a decision are also wrapped with middleware.WithRetry so a lost
compare-and-set against another process is retried cfg.Retries times.
*/
package router
