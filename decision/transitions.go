// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decision

import (
	"fmt"
	"strings"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

// CastVote records memberID's single vote for optionID.
func CastVote(optionID, memberID string) Mutation {
	return func(d models.Decision, _ Env) (models.Decision, error) {
		member, err := requireMember(memberID)
		if err != nil {
			return models.Decision{}, err
		}
		if err := requireActive(d); err != nil {
			return models.Decision{}, err
		}
		idx, err := findOption(d, optionID)
		if err != nil {
			return models.Decision{}, err
		}
		if _, voted := d.Ballots[member]; voted {
			return models.Decision{}, fmt.Errorf("%w: %s in decision %s", ErrAlreadyVoted, member, d.ID)
		}

		next := d.Clone()
		next.Options[idx].VoteCount++
		next.Ballots[member] = next.Options[idx].ID
		return next, nil
	}
}

// AddReaction bumps one reaction counter on an option. The same member may
// react any number of times.
func AddReaction(optionID string, kind models.ReactionKind, memberID string) Mutation {
	return func(d models.Decision, _ Env) (models.Decision, error) {
		if _, err := requireMember(memberID); err != nil {
			return models.Decision{}, err
		}
		if err := requireActive(d); err != nil {
			return models.Decision{}, err
		}
		if !kind.Valid() {
			return models.Decision{}, fmt.Errorf("%w: unknown reaction kind %q", ErrValidation, kind)
		}
		idx, err := findOption(d, optionID)
		if err != nil {
			return models.Decision{}, err
		}

		next := d.Clone()
		tally := &next.Options[idx].Reactions
		switch kind {
		case models.ReactionLike:
			tally.Like++
		case models.ReactionConcern:
			tally.Concern++
		case models.ReactionQuestion:
			tally.Question++
		}
		return next, nil
	}
}

// AddOptionComment appends a comment to an option's thread.
func AddOptionComment(optionID, memberID, text string) Mutation {
	return func(d models.Decision, env Env) (models.Decision, error) {
		comment, err := newComment(memberID, text, env)
		if err != nil {
			return models.Decision{}, err
		}
		if err := requireActive(d); err != nil {
			return models.Decision{}, err
		}
		idx, err := findOption(d, optionID)
		if err != nil {
			return models.Decision{}, err
		}

		next := d.Clone()
		next.Options[idx].Comments = append(next.Options[idx].Comments, comment)
		return next, nil
	}
}

// AddDiscussionMessage appends a message to the decision-level discussion.
func AddDiscussionMessage(memberID, text string) Mutation {
	return func(d models.Decision, env Env) (models.Decision, error) {
		comment, err := newComment(memberID, text, env)
		if err != nil {
			return models.Decision{}, err
		}
		if err := requireActive(d); err != nil {
			return models.Decision{}, err
		}

		next := d.Clone()
		next.Discussion = append(next.Discussion, comment)
		return next, nil
	}
}

func newComment(memberID, text string, env Env) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	member, err := requireMember(memberID)
	if err != nil {
		return models.Comment{}, err
	}
	return models.Comment{
		ID:        env.IDs.NewID(),
		AuthorID:  member,
		Text:      text,
		CreatedAt: env.Now,
	}, nil
}
