package signup

import "github.com/pickupfc/matchday/internal/models"

// Tally groups a session's voters by their current choice, each list
// ordered by when the member last changed their vote
type Tally struct {
	Yes   []*models.Member
	No    []*models.Member
	Maybe []*models.Member
}

type StartSessionInput struct {
	RoomID           string
	GuildID          string
	AuthorID         string
	RequesterIsAdmin bool
	Format           models.Format

	// RawDate and RawTime are free-form user input; empty means unset
	RawDate string
	RawTime string

	// Status is an explicit schedule certainty; empty resolves
	// implicitly from date and time
	Status models.ScheduleStatus
}

type StartSessionOutput struct {
	Session *models.Session
}

type LaunchFromDraftInput struct {
	Draft    *models.Draft
	AuthorID string
}

type LaunchFromDraftOutput struct {
	Session *models.Session
}

type RecordVoteInput struct {
	SessionID int64

	// Member carries the voter's latest observed profile; a vote is
	// proof of presence, so the roster is refreshed from it
	Member *models.Member

	Choice models.VoteChoice
}

type RecordVoteOutput struct {
	// Changed is false when the vote matched the member's current
	// choice and nothing was written
	Changed bool

	// Closed is true only when this vote filled the quota and closed
	// the session
	Closed bool

	Tally   *Tally
	Session *models.Session
}

type GetTallyInput struct {
	SessionID int64
}

type GetTallyOutput struct {
	Tally *Tally
}

type EndSessionInput struct {
	RoomID           string
	RequesterID      string
	RequesterIsAdmin bool
}

type EndSessionOutput struct {
	Session *models.Session
}

type UpdateScheduleInput struct {
	RoomID           string
	RequesterIsAdmin bool

	// RawDate and RawTime are free-form user input; empty keeps the
	// prior value
	RawDate string
	RawTime string

	// Status overrides the stored certainty when set; empty keeps the
	// prior value
	Status models.ScheduleStatus
}

type UpdateScheduleOutput struct {
	Session *models.Session
}

type GetActiveSessionInput struct {
	RoomID string
}

type GetActiveSessionOutput struct {
	Session *models.Session
}

type SetAnnouncementInput struct {
	SessionID int64
	MessageID string
}
