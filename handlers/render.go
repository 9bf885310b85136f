// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/decision"
	"github.com/aidanlaopiano-cell/Groupdecisionmakingapp/models"
)

func ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func renderDecision(w io.Writer, view models.DecisionView, now time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s  [%s]", view.Title, view.Status)
	if view.BlindVoting {
		fmt.Fprint(bw, "  blind voting")
	}
	fmt.Fprintln(bw)
	if view.Description != "" {
		fmt.Fprintln(bw, view.Description)
	}
	fmt.Fprintf(bw, "Created by %s %s · %s\n", view.CreatorID, ago(view.CreatedAt, now), plural(view.MemberCount, "member"))
	fmt.Fprintf(bw, "Members: %s\n", strings.Join(view.Members, ", "))

	if view.FinalOptionText != nil {
		fmt.Fprintf(bw, "Final choice: %s", *view.FinalOptionText)
		if view.FinalizedAt != nil {
			fmt.Fprintf(bw, " (finalized %s)", ago(*view.FinalizedAt, now))
		}
		fmt.Fprintln(bw)
	}
	if !view.VotesVisible {
		fmt.Fprintln(bw, "Votes are hidden until the decision is finalized.")
	}
	fmt.Fprintln(bw)

	tw := tabwriter.NewWriter(bw, 0, 0, 2, ' ', 0)
	for i, opt := range view.Options {
		votes := "-"
		if opt.VoteCount != nil && opt.Percent != nil {
			votes = fmt.Sprintf("%s\t%d%%", plural(*opt.VoteCount, "vote"), *opt.Percent)
		} else {
			votes += "\t"
		}
		mark := " "
		if view.YourVote != nil && *view.YourVote == opt.ID {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s%d.\t%s\t%s\t%s\n", mark, i+1, opt.Text, votes, reactions(opt.Reactions))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for i, opt := range view.Options {
		if len(opt.Comments) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\nComments on %d. %s\n", i+1, opt.Text)
		writeThread(bw, opt.Comments, now)
	}

	if view.Recommendation != nil {
		rec := view.Recommendation
		fmt.Fprintf(bw, "\nMost voted: %s (%s, %d%%)\n", rec.Text, plural(rec.Votes, "vote"), rec.Percent)
	}
	if view.TotalVotes != nil {
		fmt.Fprintf(bw, "Total: %s\n", plural(*view.TotalVotes, "vote"))
	}

	if view.ViewerID != "" {
		switch {
		case view.YourVote != nil:
			if opt, ok := optionText(view, *view.YourVote); ok {
				fmt.Fprintf(bw, "You voted for %s.\n", opt)
			}
		case view.Status == models.StatusActive:
			fmt.Fprintln(bw, "You have not voted yet.")
		}
		if view.CanFinalize {
			fmt.Fprintln(bw, "You can finalize this decision.")
		}
	}

	if len(view.Discussion) > 0 {
		fmt.Fprintln(bw, "\nDiscussion")
		writeThread(bw, view.Discussion, now)
	}

	return bw.Flush()
}

func reactions(t models.ReactionTally) string {
	parts := make([]string, 0, len(models.ReactionKinds))
	for _, kind := range models.ReactionKinds {
		parts = append(parts, fmt.Sprintf("%s %d", kind, t.Count(kind)))
	}
	return strings.Join(parts, " · ")
}

func writeThread(w io.Writer, comments []models.Comment, now time.Time) {
	for _, c := range comments {
		fmt.Fprintf(w, "  %s (%s): %s\n", c.AuthorID, ago(c.CreatedAt, now), c.Text)
	}
}

func optionText(view models.DecisionView, optionID string) (string, bool) {
	for _, opt := range view.Options {
		if opt.ID == optionID {
			return opt.Text, true
		}
	}
	return "", false
}

// renderList prints active decisions then finalized ones, each newest first.
// A status filter prints only that section.
func renderList(w io.Writer, decisions []models.Decision, status models.Status, now time.Time) error {
	bw := bufio.NewWriter(w)
	if len(decisions) == 0 {
		fmt.Fprintln(bw, "No decisions yet.")
		return bw.Flush()
	}

	sections := []models.Status{models.StatusActive, models.StatusFinalized}
	if status != "" {
		sections = []models.Status{status}
	}

	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%s\n", sectionTitle(section))

		tw := tabwriter.NewWriter(bw, 0, 0, 2, ' ', 0)
		count := 0
		for _, d := range decisions {
			if d.Status != section {
				continue
			}
			count++
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", d.ID, d.Title, summary(d, now))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if count == 0 {
			fmt.Fprintln(bw, "  (none)")
		}
	}
	return bw.Flush()
}

func sectionTitle(s models.Status) string {
	if s == models.StatusFinalized {
		return "Finalized"
	}
	return "Active"
}

func summary(d models.Decision, now time.Time) string {
	if d.Status == models.StatusFinalized {
		final := ""
		if d.FinalOptionText != nil {
			final = *d.FinalOptionText
		}
		at := d.CreatedAt
		if d.FinalizedAt != nil {
			at = *d.FinalizedAt
		}
		return fmt.Sprintf("→ %s\tfinalized %s", final, ago(at, now))
	}

	votes := "votes hidden"
	if decision.VotesVisible(d) {
		votes = plural(d.TotalVotes(), "vote")
	}
	return fmt.Sprintf("%s, %s\tcreated %s", plural(len(d.Options), "option"), votes, ago(d.CreatedAt, now))
}
