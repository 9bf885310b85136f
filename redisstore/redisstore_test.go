// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package redisstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/clock"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/idgen"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

var start = time.Date(2025, 11, 17, 9, 0, 0, 0, time.UTC)

func setupTestRedis(t *testing.T) (*Repository, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	repo, err := New(context.Background(), "redis://"+s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, s
}

func newDecision(t *testing.T) models.Decision {
	t.Helper()
	d, err := decision.New(models.CreateDecisionRequest{
		Title:       "Lunch",
		CreatorID:   "A",
		OptionTexts: []string{"Pizza", "Sushi"},
	}, decision.Env{Now: start, IDs: idgen.NewSequence("r")})
	if err != nil {
		t.Fatalf("decision.New failed: %v", err)
	}
	return d
}

func TestNewBadURL(t *testing.T) {
	if _, err := New(context.Background(), "not a url"); err == nil {
		t.Error("expected error for malformed url")
	}
}

func TestInsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo, s := setupTestRedis(t)
	d := newDecision(t)

	if err := repo.Insert(ctx, d); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := repo.Insert(ctx, d); err == nil {
		t.Error("expected duplicate insert to fail")
	}
	if !s.Exists("decide:decision:" + d.ID) {
		t.Error("expected decision key to exist")
	}

	got, err := repo.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Lunch" || got.Version != 1 || len(got.Options) != 2 {
		t.Errorf("unexpected decision %+v", got)
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, decision.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertIndexes(t *testing.T) {
	ctx := context.Background()
	repo, s := setupTestRedis(t)
	d := newDecision(t)

	if err := repo.Insert(ctx, d); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	for _, key := range []string{"decide:decisions", "decide:decisions:active"} {
		members, err := s.Members(key)
		if err != nil {
			t.Fatalf("Members(%s) failed: %v", key, err)
		}
		if len(members) != 1 || members[0] != d.ID {
			t.Errorf("expected %s to hold only %s, got %v", key, d.ID, members)
		}
	}

	// A duplicate leaves the stored payload alone.
	dup := d.Clone()
	dup.Title = "Dinner"
	if err := repo.Insert(ctx, dup); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
	got, err := repo.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Lunch" {
		t.Errorf("expected original title, got %q", got.Title)
	}
}

func TestInsertFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	repo, s := setupTestRedis(t)
	d := newDecision(t)

	s.SetError("ERR server unavailable")
	if err := repo.Insert(ctx, d); err == nil {
		t.Fatal("expected insert to fail while redis errors")
	}
	s.SetError("")

	if s.Exists("decide:decision:" + d.ID) {
		t.Error("expected no decision key after failed insert")
	}
	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no listed decisions, got %d", len(all))
	}

	if err := repo.Insert(ctx, d); err != nil {
		t.Fatalf("retried Insert failed: %v", err)
	}
	all, _ = repo.List(ctx, "")
	if len(all) != 1 {
		t.Errorf("expected retried insert to be listed, got %d", len(all))
	}
}

func TestUpdateCompareAndSet(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRedis(t)
	d := newDecision(t)
	if err := repo.Insert(ctx, d); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	next, err := decision.Finalize("A", d.Options[1].ID)(d, decision.Env{Now: start, IDs: idgen.NewSequence("x")})
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	next.Version = 2

	if err := repo.Update(ctx, next, 1); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := repo.Update(ctx, next, 1); !errors.Is(err, store.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	missing := next.Clone()
	missing.ID = "missing"
	if err := repo.Update(ctx, missing, 1); !errors.Is(err, decision.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	active, _ := repo.List(ctx, models.StatusActive)
	finalized, _ := repo.List(ctx, models.StatusFinalized)
	all, _ := repo.List(ctx, "")
	if len(active) != 0 || len(finalized) != 1 || len(all) != 1 {
		t.Errorf("expected index to move to finalized, got active=%d finalized=%d all=%d",
			len(active), len(finalized), len(all))
	}
}

func TestListEmpty(t *testing.T) {
	repo, _ := setupTestRedis(t)
	got, err := repo.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no decisions, got %d", len(got))
	}
}

// TestStoreOverRedis drives the store against Redis with concurrent voters
// split across two stores, as two processes would be.
func TestStoreOverRedis(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewManual(start)
	stores := []*store.Store{
		store.New(repo, clk, idgen.NewSequence("p1"), logger),
		store.New(repo, clk, idgen.NewSequence("p2"), logger),
	}

	d, err := stores[0].Create(ctx, models.CreateDecisionRequest{
		Title:       "Lunch",
		CreatorID:   "A",
		OptionTexts: []string{"Pizza", "Sushi"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	numVoters := 20
	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s := stores[idx%2]
			member := fmt.Sprintf("member-%d", idx)
			// Cross-store writers may lose the compare-and-set; retry like the CLI does.
			for {
				_, err := s.CastVote(ctx, d.ID, d.Options[idx%2].ID, member)
				if store.IsRetryable(err) {
					continue
				}
				if err != nil {
					t.Errorf("CastVote failed: %v", err)
				}
				return
			}
		}(i)
	}
	wg.Wait()

	got, err := stores[1].Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.TotalVotes() != numVoters {
		t.Errorf("expected %d votes, got %d", numVoters, got.TotalVotes())
	}
	if got.Version != int64(1+numVoters) {
		t.Errorf("expected version %d, got %d", 1+numVoters, got.Version)
	}
}
