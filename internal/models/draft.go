package models

import (
	"time"
)

// DraftStep is a stage of the session setup wizard
type DraftStep string

const (
	// DraftStepFormat is the match size selection step
	DraftStepFormat DraftStep = "format"

	// DraftStepStatus is the schedule certainty selection step
	DraftStepStatus DraftStep = "status"

	// DraftStepDate is the date entry step
	DraftStepDate DraftStep = "date"

	// DraftStepTime is the time entry step
	DraftStepTime DraftStep = "time"

	// DraftStepReview is the final confirmation step
	DraftStepReview DraftStep = "review"
)

// IsValid reports whether the step is one of the five wizard stages
func (s DraftStep) IsValid() bool {
	switch s {
	case DraftStepFormat, DraftStepStatus, DraftStepDate, DraftStepTime, DraftStepReview:
		return true
	}
	return false
}

// Draft is an unlaunched session configuration, at most one per room
type Draft struct {
	// RoomID is the channel the draft belongs to
	RoomID string

	// GuildID is the guild the room belongs to
	GuildID string

	// Step is the wizard stage the draft currently sits at
	Step DraftStep

	// Format is the chosen match size, empty until the format step is done
	Format Format

	// Date is the chosen date in YYYY-MM-DD form, empty if unset
	Date string

	// Time is the chosen time in HH:MM form, empty if unset
	Time string

	// Status is the chosen schedule certainty; empty means not chosen,
	// resolved implicitly at launch
	Status ScheduleStatus

	// CreatedAt is when the wizard was started
	CreatedAt time.Time

	// UpdatedAt is when the draft was last touched
	UpdatedAt time.Time
}

// IsComplete reports whether the draft has everything launch requires
func (d *Draft) IsComplete() bool {
	return d.Format != "" && d.Date != "" && d.Time != ""
}
