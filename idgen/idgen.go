// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package idgen generates identifiers for decisions, options, and comments.
package idgen

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

type Generator interface {
	NewID() string
}

// UUID returns random version 4 UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Sequence returns prefix-1, prefix-2, ... and is safe for concurrent use.
// Tests use it to get stable ids.
type Sequence struct {
	prefix string

	mu   sync.Mutex
	next int
}

func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.prefix + "-" + strconv.Itoa(s.next)
}
