// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/clock"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/cliparse"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/middleware"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

type DecisionHandler struct {
	store *store.Store
	cfg   cliparse.Config
	clock clock.Clock
	in    io.Reader
}

// NewDecisionHandler builds the handler. in is read by "create -f -".
func NewDecisionHandler(s *store.Store, cfg cliparse.Config, clk clock.Clock, in io.Reader) *DecisionHandler {
	return &DecisionHandler{store: s, cfg: cfg, clock: clk, in: in}
}

// Create handles: create [-title T] [-desc D] [-members a,b] [-blind] [-f file] option...
func (h *DecisionHandler) Create(ctx context.Context, w io.Writer, args []string) error {
	var req models.CreateDecisionRequest
	var members, file string

	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&req.Title, "title", "", "Decision title")
	fs.StringVar(&req.Description, "desc", "", "Decision description")
	fs.StringVar(&members, "members", "", "Comma-separated member ids")
	fs.BoolVar(&req.BlindVoting, "blind", false, "Hide votes until finalized")
	fs.StringVar(&file, "f", "", "Read the request as JSON from a file (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return usageError("create: %v", err)
	}

	if file != "" {
		if err := h.readRequest(file, &req); err != nil {
			return err
		}
	} else {
		req.OptionTexts = fs.Args()
		if members != "" {
			req.Members = strings.Split(members, ",")
		}
	}

	if strings.TrimSpace(req.CreatorID) == "" {
		creator, err := requireMember(h.cfg)
		if err != nil {
			return err
		}
		req.CreatorID = creator
	}

	d, err := h.store.Create(ctx, req)
	if err != nil {
		return err
	}

	return respond(w, h.cfg, d, fmt.Sprintf("Created decision %s: %s", d.ID, d.Title))
}

func (h *DecisionHandler) readRequest(file string, req *models.CreateDecisionRequest) error {
	var r io.Reader = h.in
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("open request file: %w", err)
		}
		defer f.Close()
		r = f
	}
	if err := middleware.ParseJSONInput(r, req); err != nil {
		return fmt.Errorf("%w: invalid request JSON: %v", decision.ErrValidation, err)
	}
	return nil
}

// Show handles: show <decision>
func (h *DecisionHandler) Show(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 1 {
		return usageError("show <decision>")
	}

	view, err := h.store.View(ctx, args[0], h.cfg.Member)
	if err != nil {
		return err
	}

	if h.cfg.Output == cliparse.OutputJSON {
		middleware.JSONResponse(w, view)
		return nil
	}
	return renderDecision(w, view, h.clock.Now())
}

// List handles: list [active|finalized]
func (h *DecisionHandler) List(ctx context.Context, w io.Writer, args []string) error {
	if len(args) > 1 {
		return usageError("list [active|finalized]")
	}
	var status models.Status
	if len(args) == 1 {
		status = models.Status(args[0])
	}

	decisions, err := h.store.List(ctx, status)
	if err != nil {
		return err
	}

	if h.cfg.Output == cliparse.OutputJSON {
		views := make([]models.DecisionView, len(decisions))
		for i, d := range decisions {
			views[i] = decision.ViewFor(d, h.cfg.Member)
		}
		middleware.JSONResponse(w, views)
		return nil
	}
	return renderList(w, decisions, status, h.clock.Now())
}

// Finalize handles: finalize <decision> <option>
func (h *DecisionHandler) Finalize(ctx context.Context, w io.Writer, args []string) error {
	if len(args) != 2 {
		return usageError("finalize <decision> <option>")
	}

	// The core reports a missing actor as unauthorized.
	optionID, err := lookupOption(ctx, h.store, args[0], args[1])
	if err != nil {
		return err
	}

	d, err := h.store.Finalize(ctx, args[0], h.cfg.Member, optionID)
	if err != nil {
		return err
	}

	return respond(w, h.cfg, d, fmt.Sprintf("Finalized %q: %s", d.Title, *d.FinalOptionText))
}
