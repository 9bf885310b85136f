// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decision

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

// Finalize locks in chosenOptionID as the outcome. Only the creator may
// finalize, and only once. The choice is not constrained by vote counts.
func Finalize(actorID, chosenOptionID string) Mutation {
	return func(d models.Decision, env Env) (models.Decision, error) {
		if strings.TrimSpace(actorID) != d.CreatorID {
			return models.Decision{}, fmt.Errorf("%w: only the creator can finalize decision %s", ErrUnauthorized, d.ID)
		}
		if err := requireActive(d); err != nil {
			return models.Decision{}, err
		}
		idx, err := findOption(d, chosenOptionID)
		if err != nil {
			return models.Decision{}, err
		}

		next := d.Clone()
		text := next.Options[idx].Text
		at := env.Now
		next.Status = models.StatusFinalized
		next.FinalOptionText = &text
		next.FinalizedAt = &at
		return next, nil
	}
}

// Ranked returns the options ordered by vote count, highest first. Ties keep
// creation order.
func Ranked(d models.Decision) []models.Option {
	ranked := append([]models.Option(nil), d.Options...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].VoteCount > ranked[j].VoteCount
	})
	return ranked
}

// Recommend returns the most voted option. It reports false when no votes
// have been cast. Callers gate it with VotesVisible.
func Recommend(d models.Decision) (models.Recommendation, bool) {
	total := d.TotalVotes()
	if total == 0 {
		return models.Recommendation{}, false
	}
	top := Ranked(d)[0]
	return models.Recommendation{
		OptionID: top.ID,
		Text:     top.Text,
		Votes:    top.VoteCount,
		Percent:  Percent(top.VoteCount, total),
	}, true
}

// Percent is votes as a whole percentage of total, rounded half up.
func Percent(votes, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(votes)*100/float64(total) + 0.5))
}
