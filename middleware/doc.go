// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides command wrappers and output helpers for the CLI.

# Handlers

A HandlerFunc runs one subcommand:

	type HandlerFunc func(ctx context.Context, w io.Writer, args []string) error

# Command Logging

Wrap handlers with command logging:

	r.Handle("vote", "...", middleware.WithLogging("vote", h.Vote))

Logs completion or failure with the error code and duration_ms.

# Retries

WithRetry reruns a handler when it fails with store.ErrConflict, which
happens when another process wrote the same decision between our read and
our write. Domain errors such as AlreadyVoted are returned immediately.

	middleware.WithRetry(cfg.Retries, h.Vote)

# JSON Helpers

Write JSON output:

	middleware.JSONResponse(w, view)

Write JSON errors:

	middleware.ErrorResponse(w, err)

Output format:

	{"error": "AlreadyVotedError", "message": "..."}

Read JSON input:

	var req models.CreateDecisionRequest
	if err := middleware.ParseJSONInput(os.Stdin, &req); err != nil {
		// handle error
	}

# Exit Codes

	0   success
	1   internal error
	2   ValidationError
	3   NotFoundError
	4   InvalidStateError
	5   AlreadyVotedError
	6   AuthorizationError
	64  usage error
	75  write conflict (retryable)
*/
package middleware
