package session

import "github.com/pickupfc/matchday/internal/models"

type CreateSessionInput struct {
	// Session to persist; ID is assigned by the repository
	Session *models.Session
}

type GetSessionInput struct {
	SessionID int64
}

type GetActiveByRoomInput struct {
	RoomID string
}

type SaveSessionInput struct {
	Session *models.Session
}

type CloseSessionInput struct {
	SessionID int64
}

type CloseSessionOutput struct {
	// Closed is true only for the call that flipped the session from
	// active to inactive
	Closed bool

	// Session is the post-close state
	Session *models.Session
}

type ListActiveInput struct {
}

type ListActiveOutput struct {
	Sessions []*models.Session
}

type DeleteSessionInput struct {
	SessionID int64
}
