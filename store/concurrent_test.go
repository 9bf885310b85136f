// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

// TestConcurrentVotesDistinctMembers verifies that N members voting at once
// yields exactly N votes.
func TestConcurrentVotesDistinctMembers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	d := createLunch(t, s, false)

	numVoters := 50
	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			optionID := d.Options[idx%2].ID
			if _, err := s.CastVote(ctx, d.ID, optionID, fmt.Sprintf("member-%d", idx)); err != nil {
				failures.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if failures.Load() != 0 {
		t.Fatalf("expected no failures, got %d", failures.Load())
	}
	stored, _ := s.Get(ctx, d.ID)
	if stored.TotalVotes() != numVoters {
		t.Errorf("expected %d votes, got %d", numVoters, stored.TotalVotes())
	}
	if len(stored.Ballots) != numVoters {
		t.Errorf("expected %d ballots, got %d", numVoters, len(stored.Ballots))
	}
}

// TestConcurrentVotesSameMember verifies that one member racing on every
// option gets exactly one vote counted.
func TestConcurrentVotesSameMember(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	d := createLunch(t, s, false)

	var wg sync.WaitGroup
	var successes, alreadyVoted atomic.Int32

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := s.CastVote(ctx, d.ID, d.Options[idx%2].ID, "B")
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, decision.ErrAlreadyVoted):
				alreadyVoted.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes.Load() != 1 || alreadyVoted.Load() != 19 {
		t.Errorf("expected 1 success and 19 rejections, got %d and %d", successes.Load(), alreadyVoted.Load())
	}
	stored, _ := s.Get(ctx, d.ID)
	if stored.TotalVotes() != 1 {
		t.Errorf("expected 1 vote, got %d", stored.TotalVotes())
	}
}

// TestConcurrentFinalize verifies exactly one finalize wins.
func TestConcurrentFinalize(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	d := createLunch(t, s, false)

	var wg sync.WaitGroup
	var winners, losers atomic.Int32
	var winningText atomic.Value

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			next, err := s.Finalize(ctx, d.ID, "A", d.Options[idx%2].ID)
			switch {
			case err == nil:
				winners.Add(1)
				winningText.Store(*next.FinalOptionText)
			case errors.Is(err, decision.ErrInvalidState):
				losers.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if winners.Load() != 1 || losers.Load() != 9 {
		t.Fatalf("expected 1 winner and 9 losers, got %d and %d", winners.Load(), losers.Load())
	}
	stored, _ := s.Get(ctx, d.ID)
	if stored.Status != models.StatusFinalized || *stored.FinalOptionText != winningText.Load().(string) {
		t.Errorf("stored outcome %v does not match winner %v", stored.FinalOptionText, winningText.Load())
	}
}

// TestConcurrentMixedOperations runs votes, reactions, and comments on
// several decisions at once.
func TestConcurrentMixedOperations(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	decisions := make([]models.Decision, 4)
	for i := range decisions {
		decisions[i] = createLunch(t, s, i%2 == 0)
	}

	var wg sync.WaitGroup
	perDecision := 10
	for _, d := range decisions {
		for i := 0; i < perDecision; i++ {
			wg.Add(3)
			member := fmt.Sprintf("m%d", i)
			go func(d models.Decision) {
				defer wg.Done()
				if _, err := s.CastVote(ctx, d.ID, d.Options[0].ID, member); err != nil {
					t.Errorf("CastVote: %v", err)
				}
			}(d)
			go func(d models.Decision) {
				defer wg.Done()
				if _, err := s.AddReaction(ctx, d.ID, d.Options[1].ID, models.ReactionQuestion, member); err != nil {
					t.Errorf("AddReaction: %v", err)
				}
			}(d)
			go func(d models.Decision) {
				defer wg.Done()
				if _, err := s.AddOptionComment(ctx, d.ID, d.Options[1].ID, member, "why?"); err != nil {
					t.Errorf("AddOptionComment: %v", err)
				}
			}(d)
		}
	}
	wg.Wait()

	for _, d := range decisions {
		stored, err := s.Get(ctx, d.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if stored.Options[0].VoteCount != perDecision {
			t.Errorf("decision %s: expected %d votes, got %d", d.ID, perDecision, stored.Options[0].VoteCount)
		}
		if stored.Options[1].Reactions.Question != perDecision {
			t.Errorf("decision %s: expected %d questions, got %d", d.ID, perDecision, stored.Options[1].Reactions.Question)
		}
		if len(stored.Options[1].Comments) != perDecision {
			t.Errorf("decision %s: expected %d comments, got %d", d.ID, perDecision, len(stored.Options[1].Comments))
		}
		if stored.Version != int64(1+3*perDecision) {
			t.Errorf("decision %s: expected version %d, got %d", d.ID, 1+3*perDecision, stored.Version)
		}
	}
}
