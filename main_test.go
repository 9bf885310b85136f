// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/middleware"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

func TestRunAcrossInvocations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "decide.db")
	base := []string{"-env", "", "-t", "sqlite", "-d", dbPath, "-o", "json"}

	invoke := func(member string, args ...string) (string, int) {
		var stdout, stderr bytes.Buffer
		full := append(append(append([]string{}, base...), "-m", member), args...)
		code := run(full, strings.NewReader(""), &stdout, &stderr)
		return stdout.String(), code
	}

	out, code := invoke("A", "create", "-title", "Lunch", "Pizza", "Sushi")
	if code != middleware.ExitOK {
		t.Fatalf("create exited %d: %s", code, out)
	}
	var view models.DecisionView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode create output: %v", err)
	}

	// A separate invocation sees the same decision.
	if out, code := invoke("B", "vote", view.ID, "1"); code != middleware.ExitOK {
		t.Fatalf("vote exited %d: %s", code, out)
	}

	out, code = invoke("B", "vote", view.ID, "2")
	if code != middleware.ExitAlreadyVoted {
		t.Fatalf("expected exit %d, got %d", middleware.ExitAlreadyVoted, code)
	}
	var errResp models.ErrorResponse
	if err := json.Unmarshal([]byte(out), &errResp); err != nil {
		t.Fatalf("decode error output: %v", err)
	}
	if errResp.Error != "AlreadyVotedError" {
		t.Errorf("expected AlreadyVotedError, got %s", errResp.Error)
	}

	if _, code := invoke("B", "finalize", view.ID, "1"); code != middleware.ExitUnauthorized {
		t.Errorf("expected exit %d, got %d", middleware.ExitUnauthorized, code)
	}
	if _, code := invoke("A", "show", "missing"); code != middleware.ExitNotFound {
		t.Errorf("expected exit %d, got %d", middleware.ExitNotFound, code)
	}
}

func TestRunBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-env", "", "-o", "yaml", "list"}, strings.NewReader(""), &stdout, &stderr)
	if code != middleware.ExitUsage {
		t.Errorf("expected exit %d, got %d", middleware.ExitUsage, code)
	}
	if !strings.Contains(stderr.String(), "unsupported output format") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestRunMemoryBackend(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-env", "", "-t", "memory", "list"}, strings.NewReader(""), &stdout, &stderr)
	if code != middleware.ExitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != "No decisions yet." {
		t.Errorf("unexpected output %q", stdout.String())
	}
}
