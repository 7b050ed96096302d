package reminder

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/pickupfc/matchday/internal/services/reminder Notifier

import (
	"context"
)

// Notifier delivers a reminder text to a room. The transport owns the
// implementation.
type Notifier interface {
	// Notify posts the text to the room
	Notify(ctx context.Context, roomID string, text string) error
}

// Service nudges members who have not voted on an active session
type Service interface {
	// Sweep walks every active session once and reminds its non-voters.
	// A failed room is skipped, never aborting the sweep.
	Sweep(ctx context.Context) error
}
