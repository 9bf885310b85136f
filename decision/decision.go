// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decision

import (
	"fmt"
	"strings"
	"time"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/idgen"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

// MinOptions is the smallest option set a decision may be created with.
const MinOptions = 2

// Env carries the capabilities a transition may consume. Transitions never
// read the wall clock or generate randomness on their own.
type Env struct {
	Now time.Time
	IDs idgen.Generator
}

// Mutation is a pure transition from one decision snapshot to the next.
// It must not modify its input.
type Mutation func(d models.Decision, env Env) (models.Decision, error)

// New validates req and builds an active decision with zeroed tallies and
// empty threads.
func New(req models.CreateDecisionRequest, env Env) (models.Decision, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Decision{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	creator := strings.TrimSpace(req.CreatorID)
	if creator == "" {
		return models.Decision{}, fmt.Errorf("%w: creator_id is required", ErrValidation)
	}

	var texts []string
	for _, text := range req.OptionTexts {
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) < MinOptions {
		return models.Decision{}, fmt.Errorf("%w: at least %d non-empty options are required, got %d",
			ErrValidation, MinOptions, len(texts))
	}

	options := make([]models.Option, len(texts))
	for i, text := range texts {
		options[i] = models.Option{
			ID:       env.IDs.NewID(),
			Text:     text,
			Comments: []models.Comment{},
		}
	}

	return models.Decision{
		ID:          env.IDs.NewID(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		CreatorID:   creator,
		CreatedAt:   env.Now,
		Members:     normalizeMembers(creator, req.Members),
		Options:     options,
		Status:      models.StatusActive,
		Discussion:  []models.Comment{},
		BlindVoting: req.BlindVoting,
		Ballots:     map[string]string{},
		Version:     1,
	}, nil
}

// normalizeMembers trims, drops blanks and duplicates, and guarantees the
// creator is a member (listed first when it had to be added).
func normalizeMembers(creator string, members []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	if !seen[creator] {
		out = append([]string{creator}, out...)
	}
	return out
}

func requireMember(memberID string) (string, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return "", fmt.Errorf("%w: member id is required", ErrValidation)
	}
	return memberID, nil
}

func requireActive(d models.Decision) error {
	if d.Status == models.StatusFinalized {
		return fmt.Errorf("%w: decision %s is finalized", ErrInvalidState, d.ID)
	}
	return nil
}

func findOption(d models.Decision, optionID string) (int, error) {
	_, idx, ok := d.Option(strings.TrimSpace(optionID))
	if !ok {
		return -1, fmt.Errorf("%w: option %s in decision %s", ErrNotFound, optionID, d.ID)
	}
	return idx, nil
}
