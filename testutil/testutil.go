// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/clock"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/cliparse"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/db"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/idgen"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/middleware"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/store"
)

// TestStart is the manual clock's starting time in every test store.
var TestStart = time.Date(2025, 11, 17, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTestStore creates a store over a fresh sqlite database in a temp dir
// with a manual clock and sequential ids.
func SetupTestStore(t *testing.T) (*store.Store, *clock.Manual) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	clk := clock.NewManual(TestStart)
	return store.New(db.NewSQLRepository(conn), clk, idgen.NewSequence("id"), discardLogger()), clk
}

// SetupMemoryStore is SetupTestStore without a database.
func SetupMemoryStore(t *testing.T) (*store.Store, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(TestStart)
	return store.New(store.NewMemoryRepository(), clk, idgen.NewSequence("id"), discardLogger()), clk
}

// GetTestConfig returns a standard test configuration acting as member
func GetTestConfig(member string) cliparse.Config {
	return cliparse.Config{
		DatabaseType: "sqlite",
		DatabaseURL:  "test.db",
		Member:       member,
		Output:       cliparse.OutputText,
		Retries:      0,
	}
}

// CreateTestDecision creates a decision and fails the test on error
func CreateTestDecision(t *testing.T, s *store.Store, creator string, blind bool, options ...string) models.Decision {
	t.Helper()

	if len(options) == 0 {
		options = []string{"Pizza", "Sushi"}
	}
	d, err := s.Create(context.Background(), models.CreateDecisionRequest{
		Title:       "Test Decision",
		Description: "A test decision",
		CreatorID:   creator,
		OptionTexts: options,
		BlindVoting: blind,
	})
	if err != nil {
		t.Fatalf("Failed to create test decision: %v", err)
	}
	return d
}

// CastTestVote votes for the option at index idx
func CastTestVote(t *testing.T, s *store.Store, d models.Decision, idx int, member string) models.Decision {
	t.Helper()

	next, err := s.CastVote(context.Background(), d.ID, d.Options[idx].ID, member)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
	return next
}

// Run invokes a handler with args and returns what it wrote
func Run(h middleware.HandlerFunc, args ...string) (string, error) {
	var buf bytes.Buffer
	err := h(context.Background(), &buf, args)
	return buf.String(), err
}

// AssertJSON decodes output into the provided value
func AssertJSON(t *testing.T, output string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(output), v); err != nil {
		t.Fatalf("Failed to decode JSON output: %v\n%s", err, output)
	}
}
