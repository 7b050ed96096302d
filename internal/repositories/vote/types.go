package vote

import (
	"time"

	"github.com/pickupfc/matchday/internal/models"
)

type CastVoteInput struct {
	SessionID int64
	MemberID  string
	Choice    models.VoteChoice
	CastAt    time.Time
}

type CastVoteOutput struct {
	// Previous is the choice the vote replaced; empty for a first vote
	Previous models.VoteChoice
}

type GetVoteInput struct {
	SessionID int64
	MemberID  string
}

type ListBySessionInput struct {
	SessionID int64
}

type ListBySessionOutput struct {
	Votes []*models.Vote
}

type GetVoterIDsInput struct {
	SessionID int64
}
