// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/clock"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/cliparse"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/handlers"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/middleware"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

type route struct {
	usage   string
	summary string
	handler middleware.HandlerFunc
}

// Router dispatches subcommands to handlers.
type Router struct {
	routes map[string]route
	order  []string
}

func New() *Router {
	return &Router{routes: make(map[string]route)}
}

// Handle registers handler under name. Registering a name twice replaces
// the earlier handler.
func (r *Router) Handle(name, usage, summary string, handler middleware.HandlerFunc) {
	if _, exists := r.routes[name]; !exists {
		r.order = append(r.order, name)
	}
	r.routes[name] = route{usage: usage, summary: summary, handler: handler}
}

// Dispatch runs the command named by args[0] with the remaining args.
func (r *Router) Dispatch(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		r.Usage(w)
		return fmt.Errorf("%w: no command given", middleware.ErrUsage)
	}

	name := args[0]
	if name == "help" {
		r.Usage(w)
		return nil
	}

	rt, ok := r.routes[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q (run \"decide help\")", middleware.ErrUsage, name)
	}
	return rt.handler(ctx, w, args[1:])
}

// Usage writes the command list.
func (r *Router) Usage(w io.Writer) {
	fmt.Fprintln(w, "usage: decide [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range r.order {
		rt := r.routes[name]
		fmt.Fprintf(tw, "  %s\t%s\n", rt.usage, rt.summary)
	}
	tw.Flush()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options may be given by id or by position (1, 2, ...).")
}

func NewRouter(s *store.Store, cfg cliparse.Config, clk clock.Clock, in io.Reader) *Router {
	r := New()

	// Initialize handlers
	decisionHandler := handlers.NewDecisionHandler(s, cfg, clk, in)
	votingHandler := handlers.NewVotingHandler(s, cfg)
	discussionHandler := handlers.NewDiscussionHandler(s, cfg)
	resultsHandler := handlers.NewResultsHandler(s, cfg)

	// Writes may race another process on the same database; retry those.
	write := func(name string, h middleware.HandlerFunc) middleware.HandlerFunc {
		return middleware.WithLogging(name, middleware.WithRetry(cfg.Retries, h))
	}
	read := func(name string, h middleware.HandlerFunc) middleware.HandlerFunc {
		return middleware.WithLogging(name, h)
	}

	// Decision lifecycle
	r.Handle("create", "create [-title T] [-desc D] [-members a,b] [-blind] [-f file] <option>...", "Start a decision", read("create", decisionHandler.Create))
	r.Handle("show", "show <decision>", "Show a decision", read("show", decisionHandler.Show))
	r.Handle("list", "list [active|finalized]", "List decisions", read("list", decisionHandler.List))
	r.Handle("finalize", "finalize <decision> <option>", "Lock in the outcome (creator only)", write("finalize", decisionHandler.Finalize))

	// Voting
	r.Handle("vote", "vote <decision> <option>", "Cast your one vote", write("vote", votingHandler.Vote))
	r.Handle("react", "react <decision> <option> <like|concern|question>", "React to an option", write("react", votingHandler.React))

	// Discussion
	r.Handle("comment", "comment <decision> <option> <text>", "Comment on an option", write("comment", discussionHandler.Comment))
	r.Handle("discuss", "discuss <decision> <text>", "Post to the decision discussion", write("discuss", discussionHandler.Discuss))

	// Results
	r.Handle("recommend", "recommend <decision>", "Most voted option, when votes are visible", read("recommend", resultsHandler.Recommend))

	return r
}
