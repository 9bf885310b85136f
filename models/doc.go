// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request, and read-side types shared by
every layer.

# Domain Types

The Decision aggregate and its parts:

  - Decision: metadata, members, options, discussion, lifecycle state
  - Option: proposed choice with vote count, reactions, and comments
  - Comment: immutable authored message (option threads and discussion)
  - ReactionTally: counters for the fixed reaction vocabulary

Decision.Ballots maps member id to the option that member voted for. It is
stored with the aggregate and never exposed through DecisionView.

# Request Types

  - CreateDecisionRequest: title, description, creator_id, members,
    option_texts, blind_voting

# Read-side Types

  - DecisionView: a decision as seen by one member, with vote data gated
  - OptionView: an option with nullable vote_count/percent
  - Recommendation: advisory most-voted option
  - ErrorResponse: error, message

# Constants

Status values:

	StatusActive    = "active"
	StatusFinalized = "finalized"

Reaction kinds:

	ReactionLike     = "like"
	ReactionConcern  = "concern"
	ReactionQuestion = "question"
*/
package models
