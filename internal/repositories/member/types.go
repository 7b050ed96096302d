package member

import "github.com/pickupfc/matchday/internal/models"

type SaveMemberInput struct {
	RoomID string
	Member *models.Member
}

type GetMemberInput struct {
	MemberID string
}

type RemoveMemberInput struct {
	RoomID   string
	MemberID string
}

type ListByRoomInput struct {
	RoomID string
}

type ListByRoomOutput struct {
	Members []*models.Member
}
