package models

import "time"

// Decision status
type Status string

const (
	StatusActive    Status = "active"
	StatusFinalized Status = "finalized"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusFinalized
}

// Reaction vocabulary
type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionConcern  ReactionKind = "concern"
	ReactionQuestion ReactionKind = "question"
)

// ReactionKinds lists the closed reaction vocabulary in display order.
var ReactionKinds = []ReactionKind{ReactionLike, ReactionConcern, ReactionQuestion}

// Valid reports whether k is part of the reaction vocabulary.
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionConcern, ReactionQuestion:
		return true
	}
	return false
}

// Request types

type CreateDecisionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CreatorID   string   `json:"creator_id"`
	Members     []string `json:"members"`
	OptionTexts []string `json:"option_texts"`
	BlindVoting bool     `json:"blind_voting"`
}

// Domain types

type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ReactionTally struct {
	Like     int `json:"like"`
	Concern  int `json:"concern"`
	Question int `json:"question"`
}

// Count returns the counter for kind, or 0 for an unknown kind.
func (t ReactionTally) Count(kind ReactionKind) int {
	switch kind {
	case ReactionLike:
		return t.Like
	case ReactionConcern:
		return t.Concern
	case ReactionQuestion:
		return t.Question
	}
	return 0
}

type Option struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	VoteCount int           `json:"vote_count"`
	Reactions ReactionTally `json:"reactions"`
	Comments  []Comment     `json:"comments"`
}

type Decision struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatorID       string     `json:"creator_id"`
	CreatedAt       time.Time  `json:"created_at"`
	Members         []string   `json:"members"`
	Options         []Option   `json:"options"`
	Status          Status     `json:"status"`
	FinalOptionText *string    `json:"final_option_text,omitempty"`
	FinalizedAt     *time.Time `json:"finalized_at,omitempty"`
	Discussion      []Comment  `json:"discussion"`
	BlindVoting     bool       `json:"blind_voting"`

	// member id -> option id. Persisted with the aggregate so the
	// one-vote-per-member check survives restarts.
	Ballots map[string]string `json:"ballots"`
	Version int64             `json:"version"`
}

// Option returns the option with the given id.
func (d Decision) Option(optionID string) (Option, int, bool) {
	for i, opt := range d.Options {
		if opt.ID == optionID {
			return opt, i, true
		}
	}
	return Option{}, -1, false
}

// TotalVotes sums the vote counts of every option.
func (d Decision) TotalVotes() int {
	total := 0
	for _, opt := range d.Options {
		total += opt.VoteCount
	}
	return total
}

// Clone returns a deep copy so transitions never alias a stored snapshot.
func (d Decision) Clone() Decision {
	out := d
	out.Members = append([]string(nil), d.Members...)
	out.Discussion = append([]Comment(nil), d.Discussion...)
	out.Options = make([]Option, len(d.Options))
	for i, opt := range d.Options {
		opt.Comments = append([]Comment(nil), opt.Comments...)
		out.Options[i] = opt
	}
	if d.FinalOptionText != nil {
		text := *d.FinalOptionText
		out.FinalOptionText = &text
	}
	if d.FinalizedAt != nil {
		at := *d.FinalizedAt
		out.FinalizedAt = &at
	}
	out.Ballots = make(map[string]string, len(d.Ballots))
	for member, optionID := range d.Ballots {
		out.Ballots[member] = optionID
	}
	return out
}

// Read-side types

// Recommendation is the advisory "most voted" option surfaced to the creator.
type Recommendation struct {
	OptionID string `json:"option_id"`
	Text     string `json:"text"`
	Votes    int    `json:"votes"`
	Percent  int    `json:"percent"`
}

// OptionView is an option as seen by one reader. VoteCount and Percent are nil
// while vote data is withheld.
type OptionView struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	VoteCount *int          `json:"vote_count"`
	Percent   *int          `json:"percent"`
	Reactions ReactionTally `json:"reactions"`
	Comments  []Comment     `json:"comments"`
}

type DecisionView struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	CreatorID       string          `json:"creator_id"`
	CreatedAt       time.Time       `json:"created_at"`
	Members         []string        `json:"members"`
	MemberCount     int             `json:"member_count"`
	Status          Status          `json:"status"`
	FinalOptionText *string         `json:"final_option_text,omitempty"`
	FinalizedAt     *time.Time      `json:"finalized_at,omitempty"`
	BlindVoting     bool            `json:"blind_voting"`
	VotesVisible    bool            `json:"votes_visible"`
	TotalVotes      *int            `json:"total_votes"`
	Options         []OptionView    `json:"options"`
	Discussion      []Comment       `json:"discussion"`
	Recommendation  *Recommendation `json:"recommendation,omitempty"`
	ViewerID        string          `json:"viewer_id"`
	HasVoted        bool            `json:"has_voted"`
	YourVote        *string         `json:"your_vote,omitempty"`
	CanFinalize     bool            `json:"can_finalize"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
