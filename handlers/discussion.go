// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/cliparse"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

type DiscussionHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewDiscussionHandler(s *store.Store, cfg cliparse.Config) *DiscussionHandler {
	return &DiscussionHandler{store: s, cfg: cfg}
}

// Comment handles: comment <decision> <option> <text...>
func (h *DiscussionHandler) Comment(ctx context.Context, w io.Writer, args []string) error {
	if len(args) < 3 {
		return usageError("comment <decision> <option> <text>")
	}
	text := strings.Join(args[2:], " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: comment text is required", decision.ErrValidation)
	}

	optionID, err := lookupOption(ctx, h.store, args[0], args[1])
	if err != nil {
		return err
	}

	d, err := h.store.AddOptionComment(ctx, args[0], optionID, h.cfg.Member, text)
	if err != nil {
		return err
	}

	opt, _, _ := d.Option(optionID)
	return respond(w, h.cfg, d, fmt.Sprintf("Comment added to %s (%d in thread)", opt.Text, len(opt.Comments)))
}

// Discuss handles: discuss <decision> <text...>
func (h *DiscussionHandler) Discuss(ctx context.Context, w io.Writer, args []string) error {
	if len(args) < 2 {
		return usageError("discuss <decision> <text>")
	}

	d, err := h.store.AddDiscussionMessage(ctx, args[0], h.cfg.Member, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	return respond(w, h.cfg, d, fmt.Sprintf("Message added to %q (%d in discussion)", d.Title, len(d.Discussion)))
}
