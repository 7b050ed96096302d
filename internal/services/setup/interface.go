package setup

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/pickupfc/matchday/internal/services/setup Service

import (
	"context"
)

// Service drives the session setup wizard. A room holds at most one
// draft; every transition persists the draft and returns it so the
// caller can render the next prompt.
type Service interface {
	// Begin starts a fresh wizard for the room, replacing any prior
	// draft
	Begin(ctx context.Context, input *BeginInput) (*BeginOutput, error)

	// ChooseFormat sets the match format and advances to the status
	// step
	ChooseFormat(ctx context.Context, input *ChooseFormatInput) (*ChooseFormatOutput, error)

	// ChooseStatus sets the schedule certainty and advances to the
	// date step
	ChooseStatus(ctx context.Context, input *ChooseStatusInput) (*ChooseStatusOutput, error)

	// ChooseDate parses and sets the date and advances to the time
	// step
	ChooseDate(ctx context.Context, input *ChooseDateInput) (*ChooseDateOutput, error)

	// ChooseTime parses and sets the time and advances to the review
	// step
	ChooseTime(ctx context.Context, input *ChooseTimeInput) (*ChooseTimeOutput, error)

	// SetDateTime fills date and time in one move and jumps to review
	SetDateTime(ctx context.Context, input *SetDateTimeInput) (*SetDateTimeOutput, error)

	// JumpTo moves the wizard to an arbitrary step, for back and edit
	// actions
	JumpTo(ctx context.Context, input *JumpToInput) (*JumpToOutput, error)

	// Launch turns a complete draft into a live session and destroys
	// the draft
	Launch(ctx context.Context, input *LaunchInput) (*LaunchOutput, error)

	// Cancel discards the room's draft; a no-op when none exists
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// GetDraft returns the room's draft
	GetDraft(ctx context.Context, input *GetDraftInput) (*GetDraftOutput, error)
}
