// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/cliparse"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

type VotingHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewVotingHandler(s *store.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: s, cfg: cfg}
}

// Vote handles: vote <decision> <option>
func (h *VotingHandler) Vote(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 2 {
		return usageError("vote <decision> <option>")
	}
	member, err := requireMember(h.cfg)
	if err != nil {
		return err
	}

	optionID, err := lookupOption(ctx, h.store, args[0], args[1])
	if err != nil {
		return err
	}

	d, err := h.store.CastVote(ctx, args[0], optionID, member)
	if err != nil {
		return err
	}

	opt, _, _ := d.Option(optionID)
	return respond(w, h.cfg, d, fmt.Sprintf("%s voted for %s", member, opt.Text))
}

// React handles: react <decision> <option> <like|concern|question>
func (h *VotingHandler) React(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 3 {
		return usageError("react <decision> <option> <like|concern|question>")
	}
	member, err := requireMember(h.cfg)
	if err != nil {
		return err
	}

	optionID, err := lookupOption(ctx, h.store, args[0], args[1])
	if err != nil {
		return err
	}

	kind := models.ReactionKind(strings.ToLower(strings.TrimSpace(args[2])))
	d, err := h.store.AddReaction(ctx, args[0], optionID, kind, member)
	if err != nil {
		return err
	}

	opt, _, _ := d.Option(optionID)
	return respond(w, h.cfg, d, fmt.Sprintf("%s reacted %s to %s (%d)", member, kind, opt.Text, opt.Reactions.Count(kind)))
}
