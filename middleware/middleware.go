// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

// HandlerFunc runs one subcommand. Output goes to w; args excludes the
// subcommand name.
type HandlerFunc func(ctx context.Context, w io.Writer, args []string) error

// ErrUsage marks malformed command lines.
var ErrUsage = errors.New("usage")

// Exit codes. Conflict uses EX_TEMPFAIL so scripts can retry.
const (
	ExitOK           = 0
	ExitInternal     = 1
	ExitValidation   = 2
	ExitNotFound     = 3
	ExitInvalidState = 4
	ExitAlreadyVoted = 5
	ExitUnauthorized = 6
	ExitUsage        = 64
	ExitConflict     = 75
)

// WithLogging wraps a handler with command logging
func WithLogging(command string, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, w io.Writer, args []string) error {
		start := time.Now()

		slog.Debug("command started", "command", command, "args", len(args))

		err := next(ctx, w, args)

		duration := time.Since(start)
		if err != nil {
			slog.Info("command failed",
				"command", command,
				"code", ErrorCode(err),
				"duration_ms", duration.Milliseconds(),
			)
			return err
		}
		slog.Info("command completed",
			"command", command,
			"duration_ms", duration.Milliseconds(),
		)
		return nil
	}
}

// WithRetry reruns next when it fails with a retryable error, up to retries
// extra attempts. Handlers must not write output before they succeed.
func WithRetry(retries int, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, w io.Writer, args []string) error {
		var err error
		for attempt := 0; ; attempt++ {
			err = next(ctx, w, args)
			if err == nil || !store.IsRetryable(err) || attempt >= retries {
				return err
			}

			backoff := time.Duration(attempt+1) * 20 * time.Millisecond
			slog.Warn("retrying after write conflict", "attempt", attempt+1, "backoff_ms", backoff.Milliseconds())

			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}

// JSONResponse writes data as indented JSON
func JSONResponse(w io.Writer, data any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes err as a JSON error document
func ErrorResponse(w io.Writer, err error) {
	JSONResponse(w, models.ErrorResponse{
		Error:   ErrorCode(err),
		Message: err.Error(),
	})
}

// ParseJSONInput decodes one JSON document from r into v, rejecting unknown
// fields.
func ParseJSONInput(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// ErrorCode names the error class of err.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUsage):
		return "UsageError"
	case errors.Is(err, store.ErrConflict):
		return "ConflictError"
	}
	return decision.Code(err)
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, store.ErrConflict):
		return ExitConflict
	case errors.Is(err, decision.ErrValidation):
		return ExitValidation
	case errors.Is(err, decision.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, decision.ErrInvalidState):
		return ExitInvalidState
	case errors.Is(err, decision.ErrAlreadyVoted):
		return ExitAlreadyVoted
	case errors.Is(err, decision.ErrUnauthorized):
		return ExitUnauthorized
	}
	return ExitInternal
}
