// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package decision holds the state model and mutation rules for group
decisions.

Everything here is pure: functions take a models.Decision snapshot and
return a new one (or an error) without touching storage, the clock, or
shared state. Persistence and serialization live in package store.

# Creation

New validates a CreateDecisionRequest and returns an active decision:

	d, err := decision.New(req, decision.Env{Now: clk.Now(), IDs: idgen.UUID{}})

# Transitions

Each write operation is a Mutation:

	CastVote(optionID, memberID)             one vote per member per decision
	AddReaction(optionID, kind, memberID)    like, concern, question
	AddOptionComment(optionID, memberID, text)
	AddDiscussionMessage(memberID, text)
	Finalize(actorID, chosenOptionID)        creator only, once

Once a decision is finalized every transition fails with ErrInvalidState.

# Reading

ViewFor applies the blind voting gate: while a blind decision is active,
vote counts, percentages, totals, and the recommendation are nil in the
returned view. Recommend and Ranked order options by votes, ties broken by
creation order.

# Errors

	ErrValidation    malformed input
	ErrNotFound      unknown decision or option
	ErrInvalidState  decision already finalized
	ErrAlreadyVoted  member re-voting
	ErrUnauthorized  non-creator finalizing

Errors are wrapped with context; match them with errors.Is.
*/
package decision
