package events

import (
	"github.com/pickupfc/matchday/internal/models"
)

// Kind identifies what a button press means
type Kind string

const (
	// KindVote records a choice on a live session
	KindVote Kind = "vote"
	// KindSetupFormat picks the draft's match format
	KindSetupFormat Kind = "setup_format"
	// KindSetupStatus picks the draft's schedule certainty
	KindSetupStatus Kind = "setup_status"
	// KindSetupDate picks a suggested date for the draft
	KindSetupDate Kind = "setup_date"
	// KindSetupJump moves the wizard to a specific step
	KindSetupJump Kind = "setup_jump"
	// KindSetupLaunch turns the draft into a live session
	KindSetupLaunch Kind = "setup_launch"
	// KindSetupCancel discards the draft
	KindSetupCancel Kind = "setup_cancel"
)

// Event is a platform-neutral description of a button press. Only the
// fields relevant to the Kind are set; the transport owns the wire
// encoding.
type Event struct {
	Kind Kind

	// Vote fields
	SessionID int64
	Choice    models.VoteChoice

	// Setup fields
	Format models.Format
	Status models.ScheduleStatus
	Date   string
	Step   models.DraftStep
}

// Vote builds a vote event for a session
func Vote(sessionID int64, choice models.VoteChoice) Event {
	return Event{Kind: KindVote, SessionID: sessionID, Choice: choice}
}

// SetupFormat builds a format pick event
func SetupFormat(format models.Format) Event {
	return Event{Kind: KindSetupFormat, Format: format}
}

// SetupStatus builds a schedule certainty pick event
func SetupStatus(status models.ScheduleStatus) Event {
	return Event{Kind: KindSetupStatus, Status: status}
}

// SetupDate builds a suggested date pick event
func SetupDate(date string) Event {
	return Event{Kind: KindSetupDate, Date: date}
}

// SetupJump builds a wizard navigation event
func SetupJump(step models.DraftStep) Event {
	return Event{Kind: KindSetupJump, Step: step}
}

// SetupLaunch builds a launch event
func SetupLaunch() Event {
	return Event{Kind: KindSetupLaunch}
}

// SetupCancel builds a cancel event
func SetupCancel() Event {
	return Event{Kind: KindSetupCancel}
}
