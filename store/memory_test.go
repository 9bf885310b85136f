// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/idgen"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

func newMemoryDecision(t *testing.T) models.Decision {
	t.Helper()
	d, err := decision.New(models.CreateDecisionRequest{
		Title:       "Lunch",
		CreatorID:   "A",
		OptionTexts: []string{"Pizza", "Sushi"},
	}, decision.Env{Now: start, IDs: idgen.NewSequence("m")})
	if err != nil {
		t.Fatalf("decision.New failed: %v", err)
	}
	return d
}

func TestMemoryRepositoryIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	d := newMemoryDecision(t)
	if err := repo.Insert(ctx, d); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	d.Options[0].VoteCount = 99
	got, _ := repo.Get(ctx, d.ID)
	if got.Options[0].VoteCount != 0 {
		t.Error("repository shares state with the inserted value")
	}

	got.Ballots["A"] = "x"
	again, _ := repo.Get(ctx, d.ID)
	if len(again.Ballots) != 0 {
		t.Error("repository shares state with a returned value")
	}
}

func TestMemoryRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	d := newMemoryDecision(t)
	if err := repo.Insert(ctx, d); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := repo.Insert(ctx, d); err == nil {
		t.Error("expected duplicate insert to fail")
	}

	next := d.Clone()
	next.Version = 2
	if err := repo.Update(ctx, next, 1); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := repo.Update(ctx, next, 1); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on stale version, got %v", err)
	}

	missing := d.Clone()
	missing.ID = "missing"
	if err := repo.Update(ctx, missing, 1); !errors.Is(err, decision.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
