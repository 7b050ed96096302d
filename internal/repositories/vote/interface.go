package vote

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pickupfc/matchday/internal/repositories/vote Repository

import (
	"context"

	"github.com/pickupfc/matchday/internal/models"
)

// Repository defines the interface for vote persistence. A member holds
// at most one vote per session; casting replaces the previous choice.
type Repository interface {
	// Cast upserts the member's choice for a session and reports the
	// previous choice, if any
	Cast(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error)

	// GetByMember retrieves the member's current vote for a session
	GetByMember(ctx context.Context, input *GetVoteInput) (*models.Vote, error)

	// ListBySession retrieves all votes for a session, ordered by when
	// each member last changed their choice
	ListBySession(ctx context.Context, input *ListBySessionInput) (*ListBySessionOutput, error)

	// GetVoterIDs retrieves the IDs of every member who voted on a
	// session
	GetVoterIDs(ctx context.Context, input *GetVoterIDsInput) ([]string, error)
}
