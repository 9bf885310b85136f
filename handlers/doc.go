// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the decide subcommand handlers.

# Handler Types

Each handler is a struct with store and config dependencies:

  - DecisionHandler: create, show, list, finalize
  - VotingHandler: vote, react
  - DiscussionHandler: option comments and the decision discussion
  - ResultsHandler: most-voted recommendation

Handlers are created via constructor functions:

	votingHandler := handlers.NewVotingHandler(s, cfg)

Every handler method is a middleware.HandlerFunc. Output goes to the
writer only after the operation succeeded, so a retried handler never
prints twice.

# Acting Member

cfg.Member is the member on whose behalf a command runs. Identity is
asserted by the caller, not verified. Commands that change a decision
require it; finalize additionally requires it to be the creator.

# Option References

Options are referenced by id or by 1-based position as shown by "show":

	decide -m B vote d-7 2

# Output

With -o json every command prints JSON: the acting member's DecisionView
for commands that change or show a decision, a list of views for list,
and a Recommendation (or null) for recommend. Text output shows relative
times ("5 minutes ago") via go-humanize.

# Blind Voting

While a blind decision is active, counts, percentages, totals, and the
recommendation are absent from every output. A member still sees which
option they voted for.
*/
package handlers
