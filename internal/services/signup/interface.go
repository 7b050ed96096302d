package signup

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/pickupfc/matchday/internal/services/signup Service

import (
	"context"
)

// Service manages sign-up sessions and their vote ledger. It is the
// only component that creates or closes sessions.
type Service interface {
	// StartSession launches a session directly, without a draft
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// LaunchFromDraft turns a completed draft into a live session and
	// removes the draft; both happen or neither does
	LaunchFromDraft(ctx context.Context, input *LaunchFromDraftInput) (*LaunchFromDraftOutput, error)

	// RecordVote applies a member's choice, refreshes their roster
	// profile and closes the session once the yes quota is reached
	RecordVote(ctx context.Context, input *RecordVoteInput) (*RecordVoteOutput, error)

	// GetTally returns the session's votes grouped by choice
	GetTally(ctx context.Context, input *GetTallyInput) (*GetTallyOutput, error)

	// EndSession closes the room's active session; only its author or
	// an admin may do so
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// UpdateSchedule partially updates the active session's date, time
	// and schedule certainty
	UpdateSchedule(ctx context.Context, input *UpdateScheduleInput) (*UpdateScheduleOutput, error)

	// GetActiveSession returns the room's active session
	GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error)

	// SetAnnouncement stores the rendered announcement message ref
	SetAnnouncement(ctx context.Context, input *SetAnnouncementInput) error
}
