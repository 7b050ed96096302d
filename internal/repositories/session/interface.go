package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/pickupfc/matchday/internal/repositories/session Repository

import (
	"context"

	"github.com/pickupfc/matchday/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// Create assigns the next session ID, atomically claims the room's
	// active slot and persists the session. Fails with
	// ErrActiveSessionExists when the room already has an active session.
	Create(ctx context.Context, input *CreateSessionInput) (*models.Session, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetActiveByRoom retrieves the room's active session
	GetActiveByRoom(ctx context.Context, input *GetActiveByRoomInput) (*models.Session, error)

	// Save persists updated session fields (schedule, message ref)
	Save(ctx context.Context, input *SaveSessionInput) error

	// Close marks the session inactive and releases the room's active
	// slot. The output reports whether this call performed the close,
	// so quota notifications fire exactly once.
	Close(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error)

	// ListActive retrieves all active sessions across rooms
	ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error)

	// Delete removes a session record and its claim. Sessions are never
	// deleted in normal operation; this exists only to unwind a launch
	// whose draft cleanup failed.
	Delete(ctx context.Context, input *DeleteSessionInput) error
}
