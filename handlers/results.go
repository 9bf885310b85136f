// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/cliparse"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/middleware"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

type ResultsHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewResultsHandler(s *store.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: s, cfg: cfg}
}

// Recommend handles: recommend <decision>
// Returns the most voted option, or nothing while votes are hidden or none
// have been cast.
func (h *ResultsHandler) Recommend(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 1 {
		return usageError("recommend <decision>")
	}

	rec, err := h.store.Recommend(ctx, args[0])
	if err != nil {
		return err
	}

	if h.cfg.Output == cliparse.OutputJSON {
		// null when there is nothing to recommend
		middleware.JSONResponse(w, rec)
		return nil
	}

	if rec == nil {
		_, err = fmt.Fprintln(w, "No recommendation yet (no visible votes)")
		return err
	}
	_, err = fmt.Fprintf(w, "Most voted: %s (%s, %d%%)\n", rec.Text, plural(rec.Votes, "vote"), rec.Percent)
	return err
}
