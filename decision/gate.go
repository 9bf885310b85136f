// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package decision

import (
	"strings"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

// VotesVisible reports whether vote counts may be shown to readers.
func VotesVisible(d models.Decision) bool {
	return !d.BlindVoting || d.Status == models.StatusFinalized
}

// ViewFor projects d for viewerID. While blind voting is in effect every
// vote-derived field (counts, percentages, total, recommendation) is left nil.
// Reactions, comments, and discussion are always visible.
func ViewFor(d models.Decision, viewerID string) models.DecisionView {
	d = d.Clone()
	viewerID = strings.TrimSpace(viewerID)
	visible := VotesVisible(d)
	total := d.TotalVotes()

	view := models.DecisionView{
		ID:              d.ID,
		Title:           d.Title,
		Description:     d.Description,
		CreatorID:       d.CreatorID,
		CreatedAt:       d.CreatedAt,
		Members:         d.Members,
		MemberCount:     len(d.Members),
		Status:          d.Status,
		FinalOptionText: d.FinalOptionText,
		FinalizedAt:     d.FinalizedAt,
		BlindVoting:     d.BlindVoting,
		VotesVisible:    visible,
		Options:         make([]models.OptionView, len(d.Options)),
		Discussion:      d.Discussion,
		ViewerID:        viewerID,
		CanFinalize:     viewerID != "" && viewerID == d.CreatorID && d.Status == models.StatusActive,
	}

	if viewerID != "" {
		if optionID, ok := d.Ballots[viewerID]; ok {
			view.HasVoted = true
			view.YourVote = &optionID
		}
	}

	for i, opt := range d.Options {
		ov := models.OptionView{
			ID:        opt.ID,
			Text:      opt.Text,
			Reactions: opt.Reactions,
			Comments:  opt.Comments,
		}
		if visible {
			count := opt.VoteCount
			pct := Percent(opt.VoteCount, total)
			ov.VoteCount = &count
			ov.Percent = &pct
		}
		view.Options[i] = ov
	}

	if visible {
		view.TotalVotes = &total
		if rec, ok := Recommend(d); ok {
			view.Recommendation = &rec
		}
	}

	return view
}
