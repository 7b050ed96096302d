package setup

import (
	"github.com/pickupfc/matchday/internal/models"
)

type BeginInput struct {
	RoomID           string
	GuildID          string
	RequesterIsAdmin bool
}

type BeginOutput struct {
	Draft *models.Draft
}

type ChooseFormatInput struct {
	RoomID string
	Format models.Format
}

type ChooseFormatOutput struct {
	Draft *models.Draft
}

type ChooseStatusInput struct {
	RoomID string
	Status models.ScheduleStatus
}

type ChooseStatusOutput struct {
	Draft *models.Draft
}

type ChooseDateInput struct {
	RoomID  string
	RawDate string
}

type ChooseDateOutput struct {
	Draft *models.Draft
}

type ChooseTimeInput struct {
	RoomID  string
	RawTime string
}

type ChooseTimeOutput struct {
	Draft *models.Draft
}

type SetDateTimeInput struct {
	RoomID  string
	RawDate string
	RawTime string
}

type SetDateTimeOutput struct {
	Draft *models.Draft
}

type JumpToInput struct {
	RoomID string
	Step   models.DraftStep
}

type JumpToOutput struct {
	Draft *models.Draft
}

type LaunchInput struct {
	RoomID   string
	AuthorID string
}

type LaunchOutput struct {
	Session *models.Session
}

type CancelInput struct {
	RoomID string
}

type CancelOutput struct {
	// Canceled is false when the room had no draft to discard
	Canceled bool
}

type GetDraftInput struct {
	RoomID string
}

type GetDraftOutput struct {
	Draft *models.Draft
}
