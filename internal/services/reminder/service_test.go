package reminder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pickupfc/matchday/internal/models"
	memberRepo "github.com/pickupfc/matchday/internal/repositories/member"
	sessionRepo "github.com/pickupfc/matchday/internal/repositories/session"
	voteRepo "github.com/pickupfc/matchday/internal/repositories/vote"
	"github.com/pickupfc/matchday/internal/services/messaging"
	"github.com/pickupfc/matchday/internal/services/reminder/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReminderServiceTestSuite struct {
	suite.Suite
	mr           *miniredis.Miniredis
	client       *redis.Client
	mockCtrl     *gomock.Controller
	mockNotifier *mocks.MockNotifier
	sessions     sessionRepo.Repository
	members      memberRepo.Repository
	votes        voteRepo.Repository
	service      Service
	ctx          context.Context
}

func (s *ReminderServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s.mockCtrl = gomock.NewController(s.T())
	s.mockNotifier = mocks.NewMockNotifier(s.mockCtrl)

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.sessions = sessions

	members, err := memberRepo.NewRedis(&memberRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.members = members

	votes, err := voteRepo.NewRedis(&voteRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.votes = votes

	messagingService, err := messaging.NewService(&messaging.Config{})
	s.Require().NoError(err)

	s.ctx = context.Background()
	service, err := NewService(s.ctx, &Config{}, sessions, members, votes, messagingService, s.mockNotifier)
	s.Require().NoError(err)
	s.service = service
}

func (s *ReminderServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestReminderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReminderServiceTestSuite))
}

// createSession persists an active session for the room
func (s *ReminderServiceTestSuite) createSession(roomID string) *models.Session {
	session, err := s.sessions.Create(s.ctx, &sessionRepo.CreateSessionInput{
		Session: &models.Session{
			RoomID:        roomID,
			GuildID:       "guild-1",
			Format:        models.Format7x7,
			NeededPlayers: 14,
			AuthorID:      "author-1",
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		},
	})
	s.Require().NoError(err)
	return session
}

// addMember puts a member on the room roster
func (s *ReminderServiceTestSuite) addMember(roomID, id string) {
	err := s.members.Save(s.ctx, &memberRepo.SaveMemberInput{
		RoomID: roomID,
		Member: &models.Member{ID: id, FirstName: "Игрок", LastName: id},
	})
	s.Require().NoError(err)
}

// castVote records a yes vote without going through the signup service
func (s *ReminderServiceTestSuite) castVote(sessionID int64, memberID string) {
	_, err := s.votes.Cast(s.ctx, &voteRepo.CastVoteInput{
		SessionID: sessionID,
		MemberID:  memberID,
		Choice:    models.VoteYes,
		CastAt:    time.Now(),
	})
	s.Require().NoError(err)
}

func (s *ReminderServiceTestSuite) TestSweepRemindsNonVoters() {
	session := s.createSession("room-1")
	s.addMember("room-1", "user-1")
	s.addMember("room-1", "user-2")
	s.addMember("room-1", "user-3")
	s.castVote(session.ID, "user-1")

	var sent string
	s.mockNotifier.EXPECT().
		Notify(gomock.Any(), "room-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, text string) error {
			sent = text
			return nil
		})

	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)

	s.Contains(sent, "⏰ Напоминание!")
	s.NotContains(sent, "<@user-1>")
	s.Contains(sent, "<@user-2>")
	s.Contains(sent, "<@user-3>")
}

func (s *ReminderServiceTestSuite) TestSweepSkipsFullyVotedRoom() {
	session := s.createSession("room-1")
	s.addMember("room-1", "user-1")
	s.castVote(session.ID, "user-1")

	// No Notify expectation: the sweep must stay silent
	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)
}

func (s *ReminderServiceTestSuite) TestSweepWithNoActiveSessions() {
	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)
}

func (s *ReminderServiceTestSuite) TestSweepSurvivesNotifyFailure() {
	for i := 1; i <= 3; i++ {
		room := fmt.Sprintf("room-%d", i)
		s.createSession(room)
		s.addMember(room, fmt.Sprintf("user-%d", i))
	}

	notified := make(map[string]bool)
	s.mockNotifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, roomID string, _ string) error {
			notified[roomID] = true
			if strings.HasSuffix(roomID, "-2") {
				return errors.New("transport down")
			}
			return nil
		}).
		Times(3)

	err := s.service.Sweep(s.ctx)
	s.Require().NoError(err)

	// Every room was attempted despite room-2 failing
	s.Len(notified, 3)
}
