// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/clock"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/idgen"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

// ErrConflict is returned when a decision changed between load and save.
var ErrConflict = errors.New("concurrent modification")

// IsRetryable reports whether err is transient write contention. Domain
// rejections such as decision.ErrAlreadyVoted are never retryable.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// Repository persists decision snapshots.
//
// Get returns an error wrapping decision.ErrNotFound for unknown ids. Update
// must store d only if the stored version equals expectedVersion, and return
// an error wrapping ErrConflict otherwise.
type Repository interface {
	Insert(ctx context.Context, d models.Decision) error
	Get(ctx context.Context, id string) (models.Decision, error)
	List(ctx context.Context, status models.Status) ([]models.Decision, error)
	Update(ctx context.Context, d models.Decision, expectedVersion int64) error
}

// Store is the single authority over decisions. Writes to one decision are
// serialized; different decisions proceed in parallel.
type Store struct {
	repo   Repository
	clock  clock.Clock
	ids    idgen.Generator
	logger *slog.Logger

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// New builds a Store. A nil clock, generator, or logger falls back to the
// system clock, UUIDs, and slog.Default().
func New(repo Repository, clk clock.Clock, ids idgen.Generator, logger *slog.Logger) *Store {
	if clk == nil {
		clk = clock.System{}
	}
	if ids == nil {
		ids = idgen.UUID{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		repo:   repo,
		clock:  clk,
		ids:    ids,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Store) env() decision.Env {
	return decision.Env{Now: s.clock.Now(), IDs: s.ids}
}

func (s *Store) decisionLock(id string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.locks[id]
	if ok {
		return lock
	}
	lock = &sync.Mutex{}
	s.locks[id] = lock
	return lock
}

// Create validates req and stores a new active decision.
func (s *Store) Create(ctx context.Context, req models.CreateDecisionRequest) (models.Decision, error) {
	d, err := decision.New(req, s.env())
	if err != nil {
		return models.Decision{}, err
	}
	if err := s.repo.Insert(ctx, d); err != nil {
		return models.Decision{}, fmt.Errorf("insert decision: %w", err)
	}

	s.logger.Info("decision created",
		"decision_id", d.ID,
		"creator_id", d.CreatorID,
		"options", len(d.Options),
		"blind_voting", d.BlindVoting)

	return d, nil
}

// Get returns the current snapshot of a decision.
func (s *Store) Get(ctx context.Context, id string) (models.Decision, error) {
	d, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.Decision{}, err
	}
	return d, nil
}

// List returns decisions newest first, optionally filtered by status. An
// empty status returns every decision.
func (s *Store) List(ctx context.Context, status models.Status) ([]models.Decision, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", decision.ErrValidation, status)
	}
	decisions, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].CreatedAt.After(decisions[j].CreatedAt)
	})
	return decisions, nil
}

// Apply runs m against the current snapshot of decision id and persists the
// result. A rejected mutation leaves the stored decision untouched.
func (s *Store) Apply(ctx context.Context, id string, m decision.Mutation) (models.Decision, error) {
	id = strings.TrimSpace(id)
	if err := ctx.Err(); err != nil {
		return models.Decision{}, err
	}

	// Decisions are never deleted, so an id that exists now keeps its lock
	// entry for good. Unknown ids never get one.
	if _, err := s.repo.Get(ctx, id); err != nil {
		return models.Decision{}, err
	}

	lock := s.decisionLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return models.Decision{}, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Decision{}, err
	}

	next, err := m(current, s.env())
	if err != nil {
		return models.Decision{}, err
	}
	next.Version = current.Version + 1

	if err := s.repo.Update(ctx, next, current.Version); err != nil {
		if IsRetryable(err) {
			s.logger.Warn("decision write conflict", "decision_id", id, "version", current.Version)
		}
		return models.Decision{}, fmt.Errorf("update decision: %w", err)
	}
	return next, nil
}

// CastVote records memberID's vote for optionID.
func (s *Store) CastVote(ctx context.Context, id, optionID, memberID string) (models.Decision, error) {
	d, err := s.Apply(ctx, id, decision.CastVote(optionID, memberID))
	if err != nil {
		return models.Decision{}, err
	}
	s.logger.Info("vote cast", "decision_id", d.ID, "option_id", optionID, "member_id", memberID)
	return d, nil
}

// AddReaction bumps a reaction counter on an option.
func (s *Store) AddReaction(ctx context.Context, id, optionID string, kind models.ReactionKind, memberID string) (models.Decision, error) {
	d, err := s.Apply(ctx, id, decision.AddReaction(optionID, kind, memberID))
	if err != nil {
		return models.Decision{}, err
	}
	s.logger.Info("reaction added", "decision_id", d.ID, "option_id", optionID, "kind", kind)
	return d, nil
}

// AddOptionComment appends a comment to an option's thread.
func (s *Store) AddOptionComment(ctx context.Context, id, optionID, memberID, text string) (models.Decision, error) {
	d, err := s.Apply(ctx, id, decision.AddOptionComment(optionID, memberID, text))
	if err != nil {
		return models.Decision{}, err
	}
	s.logger.Info("option comment added", "decision_id", d.ID, "option_id", optionID, "member_id", memberID)
	return d, nil
}

// AddDiscussionMessage appends a message to the decision's discussion.
func (s *Store) AddDiscussionMessage(ctx context.Context, id, memberID, text string) (models.Decision, error) {
	d, err := s.Apply(ctx, id, decision.AddDiscussionMessage(memberID, text))
	if err != nil {
		return models.Decision{}, err
	}
	s.logger.Info("discussion message added", "decision_id", d.ID, "member_id", memberID)
	return d, nil
}

// Finalize closes the decision on chosenOptionID. Only the creator may do so.
func (s *Store) Finalize(ctx context.Context, id, actorID, chosenOptionID string) (models.Decision, error) {
	d, err := s.Apply(ctx, id, decision.Finalize(actorID, chosenOptionID))
	if err != nil {
		return models.Decision{}, err
	}
	s.logger.Info("decision finalized", "decision_id", d.ID, "final_option", *d.FinalOptionText)
	return d, nil
}

// View loads decision id and projects it for viewerID.
func (s *Store) View(ctx context.Context, id, viewerID string) (models.DecisionView, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return models.DecisionView{}, err
	}
	return decision.ViewFor(d, viewerID), nil
}

// Recommend returns the most voted option of decision id, or nil when no
// votes are cast or votes are still hidden.
func (s *Store) Recommend(ctx context.Context, id string) (*models.Recommendation, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !decision.VotesVisible(d) {
		return nil, nil
	}
	rec, ok := decision.Recommend(d)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}
