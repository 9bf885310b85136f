// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

// MemoryRepository keeps decisions in process memory. Snapshots are cloned
// on the way in and out so callers never share state with the map.
type MemoryRepository struct {
	mu        sync.RWMutex
	decisions map[string]models.Decision
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{decisions: make(map[string]models.Decision)}
}

func (r *MemoryRepository) Insert(ctx context.Context, d models.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.decisions[d.ID]; exists {
		return fmt.Errorf("decision %s already exists", d.ID)
	}
	r.decisions[d.ID] = d.Clone()
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (models.Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decisions[id]
	if !ok {
		return models.Decision{}, fmt.Errorf("%w: decision %s", decision.ErrNotFound, id)
	}
	return d.Clone(), nil
}

func (r *MemoryRepository) List(ctx context.Context, status models.Status) ([]models.Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Decision, 0, len(r.decisions))
	for _, d := range r.decisions {
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d.Clone())
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, d models.Decision, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.decisions[d.ID]
	if !ok {
		return fmt.Errorf("%w: decision %s", decision.ErrNotFound, d.ID)
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("%w: decision %s at version %d, expected %d", ErrConflict, d.ID, current.Version, expectedVersion)
	}
	r.decisions[d.ID] = d.Clone()
	return nil
}
