package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/pickupfc/matchday/internal/services/messaging Service

import (
	"context"
)

// Service produces every user-visible text and keyboard. Output is
// deterministic; the transport renders it without composing text of
// its own.
type Service interface {
	// GetLaunchMessage returns the announcement posted when a session
	// goes live, with the vote keyboard
	GetLaunchMessage(ctx context.Context, input *GetLaunchMessageInput) (*GetLaunchMessageOutput, error)

	// GetTallyMessage returns the announcement body after a vote, with
	// the grouped player lists
	GetTallyMessage(ctx context.Context, input *GetTallyMessageInput) (*GetTallyMessageOutput, error)

	// GetQuotaReachedMessage returns the celebration posted when the
	// yes quota fills
	GetQuotaReachedMessage(ctx context.Context, input *GetQuotaReachedMessageInput) (*GetQuotaReachedMessageOutput, error)

	// GetVoteAckMessage returns the ephemeral acknowledgment for a cast
	// vote
	GetVoteAckMessage(ctx context.Context, input *GetVoteAckMessageInput) (*GetVoteAckMessageOutput, error)

	// GetSessionEndedMessage returns the confirmation for a manual end
	GetSessionEndedMessage(ctx context.Context, input *GetSessionEndedMessageInput) (*GetSessionEndedMessageOutput, error)

	// GetScheduleUpdatedMessage confirms a date/time change on a live
	// session
	GetScheduleUpdatedMessage(ctx context.Context, input *GetScheduleUpdatedMessageInput) (*GetScheduleUpdatedMessageOutput, error)

	// GetWizardPrompt returns the prompt and keyboard for the draft's
	// current step
	GetWizardPrompt(ctx context.Context, input *GetWizardPromptInput) (*GetWizardPromptOutput, error)

	// GetSetupCanceledMessage confirms a wizard cancellation
	GetSetupCanceledMessage(ctx context.Context, input *GetSetupCanceledMessageInput) (*GetSetupCanceledMessageOutput, error)

	// GetReminderMessage returns the nudge for members who have not
	// voted yet
	GetReminderMessage(ctx context.Context, input *GetReminderMessageInput) (*GetReminderMessageOutput, error)

	// GetErrorMessage maps a service error to a user-visible notice
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
