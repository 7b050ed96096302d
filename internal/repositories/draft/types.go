package draft

import "github.com/pickupfc/matchday/internal/models"

type SaveDraftInput struct {
	Draft *models.Draft
}

type GetDraftInput struct {
	RoomID string
}

type DeleteDraftInput struct {
	RoomID string
}

type DeleteDraftOutput struct {
	// Deleted is false when the room had no draft
	Deleted bool
}
