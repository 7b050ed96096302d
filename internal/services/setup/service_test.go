package setup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pickupfc/matchday/internal/common/clock/mocks"
	"github.com/pickupfc/matchday/internal/models"
	draftRepo "github.com/pickupfc/matchday/internal/repositories/draft"
	memberRepo "github.com/pickupfc/matchday/internal/repositories/member"
	sessionRepo "github.com/pickupfc/matchday/internal/repositories/session"
	voteRepo "github.com/pickupfc/matchday/internal/repositories/vote"
	"github.com/pickupfc/matchday/internal/schedule"
	"github.com/pickupfc/matchday/internal/services/signup"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SetupServiceTestSuite struct {
	suite.Suite
	mr        *miniredis.Miniredis
	client    *redis.Client
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	drafts    draftRepo.Repository
	signup    signup.Service
	service   Service
	ctx       context.Context

	testTime time.Time
}

func (s *SetupServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.testTime = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	members, err := memberRepo.NewRedis(&memberRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	drafts, err := draftRepo.NewRedis(&draftRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.drafts = drafts

	votes, err := voteRepo.NewRedis(&voteRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	sched := schedule.New(&schedule.Config{Clock: s.mockClock})

	s.ctx = context.Background()
	signupService, err := signup.NewService(s.ctx, &signup.Config{Clock: s.mockClock}, sessions, members, drafts, votes, sched)
	s.Require().NoError(err)
	s.signup = signupService

	service, err := NewService(s.ctx, &Config{Clock: s.mockClock}, drafts, signupService, sched)
	s.Require().NoError(err)
	s.service = service
}

func (s *SetupServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestSetupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SetupServiceTestSuite))
}

func (s *SetupServiceTestSuite) begin() *models.Draft {
	output, err := s.service.Begin(s.ctx, &BeginInput{
		RoomID:           "room-1",
		GuildID:          "guild-1",
		RequesterIsAdmin: true,
	})
	s.Require().NoError(err)
	return output.Draft
}

func (s *SetupServiceTestSuite) TestBegin() {
	d := s.begin()

	s.Equal("room-1", d.RoomID)
	s.Equal("guild-1", d.GuildID)
	s.Equal(models.DraftStepFormat, d.Step)
	s.Equal(models.Format(""), d.Format)
}

func (s *SetupServiceTestSuite) TestBeginRequiresAdmin() {
	_, err := s.service.Begin(s.ctx, &BeginInput{
		RoomID:           "room-1",
		RequesterIsAdmin: false,
	})
	s.Require().ErrorIs(err, ErrNotAuthorized)
}

func (s *SetupServiceTestSuite) TestBeginRefusesWhileSessionActive() {
	_, err := s.signup.StartSession(s.ctx, &signup.StartSessionInput{
		RoomID:           "room-1",
		AuthorID:         "author-1",
		RequesterIsAdmin: true,
		Format:           models.Format7x7,
	})
	s.Require().NoError(err)

	_, err = s.service.Begin(s.ctx, &BeginInput{
		RoomID:           "room-1",
		RequesterIsAdmin: true,
	})
	s.Require().ErrorIs(err, ErrSessionActive)
}

func (s *SetupServiceTestSuite) TestBeginReplacesPriorDraft() {
	s.begin()

	_, err := s.service.ChooseFormat(s.ctx, &ChooseFormatInput{
		RoomID: "room-1",
		Format: models.Format9x9,
	})
	s.Require().NoError(err)

	d := s.begin()
	s.Equal(models.DraftStepFormat, d.Step)
	s.Equal(models.Format(""), d.Format)
}

func (s *SetupServiceTestSuite) TestForwardWalk() {
	s.begin()

	formatOut, err := s.service.ChooseFormat(s.ctx, &ChooseFormatInput{
		RoomID: "room-1",
		Format: models.Format7x7,
	})
	s.Require().NoError(err)
	s.Equal(models.DraftStepStatus, formatOut.Draft.Step)

	statusOut, err := s.service.ChooseStatus(s.ctx, &ChooseStatusInput{
		RoomID: "room-1",
		Status: models.ScheduleStatusConfirmed,
	})
	s.Require().NoError(err)
	s.Equal(models.DraftStepDate, statusOut.Draft.Step)

	dateOut, err := s.service.ChooseDate(s.ctx, &ChooseDateInput{
		RoomID:  "room-1",
		RawDate: "2026-09-22",
	})
	s.Require().NoError(err)
	s.Equal(models.DraftStepTime, dateOut.Draft.Step)
	s.Equal("2026-09-22", dateOut.Draft.Date)

	timeOut, err := s.service.ChooseTime(s.ctx, &ChooseTimeInput{
		RoomID:  "room-1",
		RawTime: "19:00",
	})
	s.Require().NoError(err)
	s.Equal(models.DraftStepReview, timeOut.Draft.Step)
	s.True(timeOut.Draft.IsComplete())
}

func (s *SetupServiceTestSuite) TestChooseDateRelativeToken() {
	s.begin()

	output, err := s.service.ChooseDate(s.ctx, &ChooseDateInput{
		RoomID:  "room-1",
		RawDate: "завтра",
	})
	s.Require().NoError(err)
	s.Equal("2026-09-01", output.Draft.Date)
}

func (s *SetupServiceTestSuite) TestChooseValidation() {
	s.begin()

	_, err := s.service.ChooseFormat(s.ctx, &ChooseFormatInput{
		RoomID: "room-1",
		Format: models.Format("11x11"),
	})
	s.Require().ErrorIs(err, ErrInvalidFormat)

	_, err = s.service.ChooseStatus(s.ctx, &ChooseStatusInput{
		RoomID: "room-1",
		Status: models.ScheduleStatus("definitely"),
	})
	s.Require().ErrorIs(err, ErrInvalidStatus)

	_, err = s.service.ChooseDate(s.ctx, &ChooseDateInput{
		RoomID:  "room-1",
		RawDate: "00.13",
	})
	s.Require().ErrorIs(err, schedule.ErrInvalidDate)

	_, err = s.service.ChooseTime(s.ctx, &ChooseTimeInput{
		RoomID:  "room-1",
		RawTime: "19:60",
	})
	s.Require().ErrorIs(err, schedule.ErrInvalidTime)
}

func (s *SetupServiceTestSuite) TestChooseWithoutDraft() {
	_, err := s.service.ChooseFormat(s.ctx, &ChooseFormatInput{
		RoomID: "room-1",
		Format: models.Format7x7,
	})
	s.Require().ErrorIs(err, ErrDraftNotFound)
}

func (s *SetupServiceTestSuite) TestSetDateTime() {
	s.begin()

	output, err := s.service.SetDateTime(s.ctx, &SetDateTimeInput{
		RoomID:  "room-1",
		RawDate: "22.09",
		RawTime: "19:30",
	})
	s.Require().NoError(err)
	s.Equal("2026-09-22", output.Draft.Date)
	s.Equal("19:30", output.Draft.Time)
	s.Equal(models.DraftStepReview, output.Draft.Step)
}

func (s *SetupServiceTestSuite) TestJumpToKeepsValues() {
	s.begin()

	_, err := s.service.ChooseFormat(s.ctx, &ChooseFormatInput{
		RoomID: "room-1",
		Format: models.Format7x7,
	})
	s.Require().NoError(err)

	output, err := s.service.JumpTo(s.ctx, &JumpToInput{
		RoomID: "room-1",
		Step:   models.DraftStepDate,
	})
	s.Require().NoError(err)
	s.Equal(models.DraftStepDate, output.Draft.Step)
	s.Equal(models.Format7x7, output.Draft.Format)

	_, err = s.service.JumpTo(s.ctx, &JumpToInput{
		RoomID: "room-1",
		Step:   models.DraftStep("summary"),
	})
	s.Require().ErrorIs(err, ErrInvalidStep)
}

func (s *SetupServiceTestSuite) TestLaunch() {
	s.begin()

	_, err := s.service.ChooseFormat(s.ctx, &ChooseFormatInput{
		RoomID: "room-1",
		Format: models.Format7x7,
	})
	s.Require().NoError(err)
	_, err = s.service.SetDateTime(s.ctx, &SetDateTimeInput{
		RoomID:  "room-1",
		RawDate: "2026-09-22",
		RawTime: "19:00",
	})
	s.Require().NoError(err)

	output, err := s.service.Launch(s.ctx, &LaunchInput{
		RoomID:   "room-1",
		AuthorID: "author-1",
	})
	s.Require().NoError(err)
	s.Equal(models.Format7x7, output.Session.Format)
	s.True(output.Session.IsActive)

	// Launch consumed the draft
	_, err = s.service.GetDraft(s.ctx, &GetDraftInput{RoomID: "room-1"})
	s.Require().ErrorIs(err, ErrDraftNotFound)
}

func (s *SetupServiceTestSuite) TestLaunchIncompleteDraft() {
	s.begin()

	_, err := s.service.ChooseFormat(s.ctx, &ChooseFormatInput{
		RoomID: "room-1",
		Format: models.Format7x7,
	})
	s.Require().NoError(err)

	// Date and time still missing
	_, err = s.service.Launch(s.ctx, &LaunchInput{
		RoomID:   "room-1",
		AuthorID: "author-1",
	})
	s.Require().ErrorIs(err, ErrIncompleteDraft)

	// The draft survives a refused launch
	output, err := s.service.GetDraft(s.ctx, &GetDraftInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Equal(models.Format7x7, output.Draft.Format)
}

func (s *SetupServiceTestSuite) TestCancelIsIdempotent() {
	s.begin()

	output, err := s.service.Cancel(s.ctx, &CancelInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.True(output.Canceled)

	output, err = s.service.Cancel(s.ctx, &CancelInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.False(output.Canceled)
}
