package member

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pickupfc/matchday/internal/repositories/member Repository

import (
	"context"

	"github.com/pickupfc/matchday/internal/models"
)

// Repository defines the interface for room roster persistence
type Repository interface {
	// Save upserts a member's profile and adds them to the room roster
	Save(ctx context.Context, input *SaveMemberInput) error

	// Get retrieves a member by ID
	Get(ctx context.Context, input *GetMemberInput) (*models.Member, error)

	// Remove drops a member from the room roster on an explicit
	// "left room" signal
	Remove(ctx context.Context, input *RemoveMemberInput) error

	// ListByRoom retrieves every known member of a room
	ListByRoom(ctx context.Context, input *ListByRoomInput) (*ListByRoomOutput, error)
}
