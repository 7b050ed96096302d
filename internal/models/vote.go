package models

import (
	"time"
)

// VoteChoice is a member's answer to a sign-up
type VoteChoice string

const (
	// VoteYes means the member is playing
	VoteYes VoteChoice = "yes"

	// VoteNo means the member is not playing
	VoteNo VoteChoice = "no"

	// VoteMaybe means the member is undecided
	VoteMaybe VoteChoice = "maybe"
)

// IsValid reports whether the choice is one of yes/no/maybe
func (c VoteChoice) IsValid() bool {
	return c == VoteYes || c == VoteNo || c == VoteMaybe
}

// Vote is a member's latest choice for a session; the newest choice
// fully replaces the previous one
type Vote struct {
	// MemberID is the voter
	MemberID string

	// SessionID is the session the vote belongs to
	SessionID int64

	// Choice is the member's current answer
	Choice VoteChoice

	// UpdatedAt is when the choice was last changed
	UpdatedAt time.Time
}
