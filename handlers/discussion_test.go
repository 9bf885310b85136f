// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/middleware"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/testutil"
)

func TestComment(t *testing.T) {
	s, clk := testutil.SetupTestStore(t)
	d := testutil.CreateTestDecision(t, s, "A", false)
	h := NewDiscussionHandler(s, testutil.GetTestConfig("B"))

	out, err := testutil.Run(h.Comment, d.ID, "1", "Sounds", "great")
	if err != nil {
		t.Fatalf("Comment failed: %v", err)
	}
	if !strings.Contains(out, "Pizza (1 in thread)") {
		t.Errorf("unexpected output %q", out)
	}

	clk.Advance(2 * time.Minute)
	show := NewDecisionHandler(s, testutil.GetTestConfig("A"), clk, nil)
	out, err = testutil.Run(show.Show, d.ID)
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if !strings.Contains(out, "B (2 minutes ago): Sounds great") {
		t.Errorf("expected comment in rendered thread\n%s", out)
	}
}

func TestCommentErrors(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	d := testutil.CreateTestDecision(t, s, "A", false)

	testCases := []struct {
		name    string
		member  string
		args    []string
		wantErr error
	}{
		{"blank text", "B", []string{d.ID, "1", "  "}, decision.ErrValidation},
		{"no member", "", []string{d.ID, "1", "hi"}, decision.ErrValidation},
		{"unknown option", "B", []string{d.ID, "nope", "hi"}, decision.ErrNotFound},
		{"missing text", "B", []string{d.ID, "1"}, middleware.ErrUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewDiscussionHandler(s, testutil.GetTestConfig(tc.member))
			if _, err := testutil.Run(h.Comment, tc.args...); !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDiscuss(t *testing.T) {
	s, _ := testutil.SetupTestStore(t)
	d := testutil.CreateTestDecision(t, s, "A", false)

	for i, member := range []string{"A", "B", "A"} {
		h := NewDiscussionHandler(s, testutil.GetTestConfig(member))
		if _, err := testutil.Run(h.Discuss, d.ID, "message", member); err != nil {
			t.Fatalf("Discuss %d failed: %v", i, err)
		}
	}

	stored, _ := s.Get(context.Background(), d.ID)
	if len(stored.Discussion) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(stored.Discussion))
	}
	for i, want := range []string{"A", "B", "A"} {
		if stored.Discussion[i].AuthorID != want || stored.Discussion[i].Text != "message "+want {
			t.Errorf("message %d: unexpected %+v", i, stored.Discussion[i])
		}
	}

	if _, err := s.Finalize(context.Background(), d.ID, "A", d.Options[0].ID); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	h := NewDiscussionHandler(s, testutil.GetTestConfig("B"))
	if _, err := testutil.Run(h.Discuss, d.ID, "too late"); !errors.Is(err, decision.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}
