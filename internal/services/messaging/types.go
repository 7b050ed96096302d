package messaging

import (
	"github.com/pickupfc/matchday/internal/events"
	"github.com/pickupfc/matchday/internal/models"
	"github.com/pickupfc/matchday/internal/services/signup"
)

// Button is a platform-neutral action button. The transport encodes
// the event into its own custom ID format.
type Button struct {
	Label string
	Event events.Event
}

// ButtonRow is one row of buttons
type ButtonRow []Button

// Keyboard is the button layout attached to a message
type Keyboard []ButtonRow

// Message is a render-ready text plus an optional keyboard
type Message struct {
	Text     string
	Keyboard Keyboard
}

type GetLaunchMessageInput struct {
	Session *models.Session
}

type GetLaunchMessageOutput struct {
	Message *Message
}

type GetTallyMessageInput struct {
	Session *models.Session
	Tally   *signup.Tally
}

type GetTallyMessageOutput struct {
	Message *Message
}

type GetQuotaReachedMessageInput struct {
	Session *models.Session
}

type GetQuotaReachedMessageOutput struct {
	Message *Message
}

type GetVoteAckMessageInput struct {
	// Changed is false for a repeated identical choice
	Changed bool
}

type GetVoteAckMessageOutput struct {
	Message *Message
}

type GetSessionEndedMessageInput struct {
}

type GetSessionEndedMessageOutput struct {
	Message *Message
}

type GetScheduleUpdatedMessageInput struct {
	Session *models.Session
}

type GetScheduleUpdatedMessageOutput struct {
	Message *Message
}

type GetWizardPromptInput struct {
	Draft *models.Draft
}

type GetWizardPromptOutput struct {
	Message *Message
}

type GetSetupCanceledMessageInput struct {
	// Canceled is false when there was no draft to discard
	Canceled bool
}

type GetSetupCanceledMessageOutput struct {
	Message *Message
}

type GetReminderMessageInput struct {
	Session   *models.Session
	NonVoters []*models.Member
}

type GetReminderMessageOutput struct {
	Message *Message
}

type GetErrorMessageInput struct {
	Err error
}

type GetErrorMessageOutput struct {
	Message *Message
}
