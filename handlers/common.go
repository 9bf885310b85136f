// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/cliparse"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/middleware"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", middleware.ErrUsage, fmt.Sprintf(format, args...))
}

// requireMember returns the acting member or a validation error naming how
// to set it.
func requireMember(cfg cliparse.Config) (string, error) {
	member := strings.TrimSpace(cfg.Member)
	if member == "" {
		return "", fmt.Errorf("%w: acting member required (use -m or DECIDE_MEMBER)", decision.ErrValidation)
	}
	return member, nil
}

// resolveOption maps ref to an option id. ref may be an option id or a
// 1-based position. Unknown refs are returned unchanged so the store reports
// them as not found.
func resolveOption(d models.Decision, ref string) string {
	ref = strings.TrimSpace(ref)
	if _, _, ok := d.Option(ref); ok {
		return ref
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(d.Options) {
		return d.Options[n-1].ID
	}
	return ref
}

// lookupOption loads the decision and resolves ref against it. The option
// set never changes after creation, so resolving outside the write is safe.
func lookupOption(ctx context.Context, s *store.Store, decisionID, ref string) (string, error) {
	d, err := s.Get(ctx, decisionID)
	if err != nil {
		return "", err
	}
	return resolveOption(d, ref), nil
}

// respond writes the member's view of d as JSON, or message as text.
func respond(w io.Writer, cfg cliparse.Config, d models.Decision, message string) error {
	if cfg.Output == cliparse.OutputJSON {
		middleware.JSONResponse(w, decision.ViewFor(d, cfg.Member))
		return nil
	}
	_, err := fmt.Fprintln(w, message)
	return err
}
