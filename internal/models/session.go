package models

import (
	"time"
)

// ScheduleStatus represents how certain the match schedule is
type ScheduleStatus string

const (
	// ScheduleStatusTentative indicates the schedule may still change
	ScheduleStatusTentative ScheduleStatus = "tentative"

	// ScheduleStatusConfirmed indicates the schedule is final
	ScheduleStatusConfirmed ScheduleStatus = "confirmed"
)

// IsValid reports whether the status is one of the known values
func (s ScheduleStatus) IsValid() bool {
	return s == ScheduleStatusTentative || s == ScheduleStatusConfirmed
}

// Session represents a launched sign-up round in a room
type Session struct {
	// ID is the unique, monotonically increasing session identifier
	ID int64

	// RoomID is the channel where the sign-up is running
	RoomID string

	// GuildID is the guild the room belongs to, used for message links
	GuildID string

	// Format is the match size being collected for
	Format Format

	// NeededPlayers is the yes-vote quota derived from the format
	NeededPlayers int

	// IsActive is false once the session is closed; sessions are never
	// deleted
	IsActive bool

	// AuthorID is the user who launched the session
	AuthorID string

	// Date is the match date in YYYY-MM-DD form, empty if unset
	Date string

	// Time is the match time in HH:MM form, empty if unset
	Time string

	// Status is the schedule certainty flag
	Status ScheduleStatus

	// MessageID is the announcement message, set after the first render
	MessageID string

	// CreatedAt is when the session was launched
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time
}
