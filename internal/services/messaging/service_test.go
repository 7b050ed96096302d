package messaging

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pickupfc/matchday/internal/events"
	"github.com/pickupfc/matchday/internal/models"
	"github.com/pickupfc/matchday/internal/schedule"
	"github.com/pickupfc/matchday/internal/services/signup"
	"github.com/stretchr/testify/suite"
)

type MessagingTestSuite struct {
	suite.Suite
	service Service
	ctx     context.Context
}

func (s *MessagingTestSuite) SetupTest() {
	service, err := NewService(&Config{})
	s.Require().NoError(err)
	s.service = service
	s.ctx = context.Background()
}

func TestMessagingTestSuite(t *testing.T) {
	suite.Run(t, new(MessagingTestSuite))
}

func member(id string) *models.Member {
	return &models.Member{ID: id, FirstName: "Игрок", LastName: id}
}

func members(n int) []*models.Member {
	out := make([]*models.Member, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, member(fmt.Sprintf("%d", i)))
	}
	return out
}

func (s *MessagingTestSuite) session() *models.Session {
	return &models.Session{
		ID:            42,
		RoomID:        "room-1",
		GuildID:       "guild-1",
		Format:        models.Format7x7,
		NeededPlayers: 14,
		IsActive:      true,
		Status:        models.ScheduleStatusConfirmed,
		Date:          "2026-09-22",
		Time:          "19:00",
	}
}

func (s *MessagingTestSuite) TestLaunchMessage() {
	output, err := s.service.GetLaunchMessage(s.ctx, &GetLaunchMessageInput{
		Session: s.session(),
	})
	s.Require().NoError(err)

	s.Contains(output.Message.Text, "⚽ Голосование началось!")
	s.Contains(output.Message.Text, "Формат: 7x7 (нужно 14 игроков)")
	s.Contains(output.Message.Text, "2026-09-22 в 19:00")
	s.Contains(output.Message.Text, "Кто играет?")

	s.Require().Len(output.Message.Keyboard, 3)
	first := output.Message.Keyboard[0][0]
	s.Equal("✅ Играю", first.Label)
	s.Equal(events.KindVote, first.Event.Kind)
	s.Equal(int64(42), first.Event.SessionID)
	s.Equal(models.VoteYes, first.Event.Choice)
}

func (s *MessagingTestSuite) TestTallyMessage() {
	output, err := s.service.GetTallyMessage(s.ctx, &GetTallyMessageInput{
		Session: s.session(),
		Tally: &signup.Tally{
			Yes:   members(2),
			Maybe: []*models.Member{member("9")},
		},
	})
	s.Require().NoError(err)

	s.Contains(output.Message.Text, "✅ Играют: Игрок 1, Игрок 2")
	s.Contains(output.Message.Text, "❌ Не играют: нет")
	s.Contains(output.Message.Text, "🤔 Думают: Игрок 9")
	s.Contains(output.Message.Text, "Игроков нужно: 14, уже есть: 2")
}

func (s *MessagingTestSuite) TestFormatPlayersListNumbersLongLists() {
	list := formatPlayersList(members(7))

	lines := strings.Split(list, "\n")
	s.Require().Len(lines, 3)
	s.Equal("1. Игрок 1  2. Игрок 2  3. Игрок 3", lines[0])
	s.Equal("4. Игрок 4  5. Игрок 5  6. Игрок 6", lines[1])
	s.Equal("7. Игрок 7", lines[2])
}

func (s *MessagingTestSuite) TestFormatPlayersListOverflow() {
	list := formatPlayersList(members(102))

	s.Contains(list, "...и ещё 2 игрока")
	s.NotContains(list, "101. ")
}

func (s *MessagingTestSuite) TestGetPlayerWordDeclension() {
	s.Equal("игрок", getPlayerWord(1))
	s.Equal("игрока", getPlayerWord(2))
	s.Equal("игрока", getPlayerWord(4))
	s.Equal("игроков", getPlayerWord(5))
	s.Equal("игроков", getPlayerWord(11))
	s.Equal("игрок", getPlayerWord(21))
	s.Equal("игроков", getPlayerWord(111))
}

func (s *MessagingTestSuite) TestReminderMessage() {
	output, err := s.service.GetReminderMessage(s.ctx, &GetReminderMessageInput{
		Session:   withMessageID(s.session(), "msg-7"),
		NonVoters: members(2),
	})
	s.Require().NoError(err)

	s.Contains(output.Message.Text, "⏰ Напоминание!")
	s.Contains(output.Message.Text, "https://discord.com/channels/guild-1/room-1/msg-7")
	s.Contains(output.Message.Text, "<@1>, <@2>")
}

func (s *MessagingTestSuite) TestReminderMessageWithoutAnnouncementRef() {
	output, err := s.service.GetReminderMessage(s.ctx, &GetReminderMessageInput{
		Session:   s.session(),
		NonVoters: members(1),
	})
	s.Require().NoError(err)
	s.NotContains(output.Message.Text, "discord.com/channels")
}

func withMessageID(session *models.Session, messageID string) *models.Session {
	session.MessageID = messageID
	return session
}

func (s *MessagingTestSuite) TestWizardPrompts() {
	cases := []struct {
		step models.DraftStep
		want string
	}{
		{models.DraftStepFormat, "Выбери формат игры"},
		{models.DraftStepStatus, "Дата и время уже известны точно?"},
		{models.DraftStepDate, "Выбери дату"},
		{models.DraftStepTime, "Напиши время"},
		{models.DraftStepReview, "📋 Текущие настройки"},
	}

	for _, tc := range cases {
		output, err := s.service.GetWizardPrompt(s.ctx, &GetWizardPromptInput{
			Draft: &models.Draft{
				RoomID: "room-1",
				Step:   tc.step,
				Format: models.Format7x7,
				Date:   "2026-09-22",
			},
		})
		s.Require().NoError(err, tc.step)
		s.Contains(output.Message.Text, tc.want)
		s.NotEmpty(output.Message.Keyboard, tc.step)
	}
}

func (s *MessagingTestSuite) TestReviewCardIncomplete() {
	output, err := s.service.GetWizardPrompt(s.ctx, &GetWizardPromptInput{
		Draft: &models.Draft{
			RoomID: "room-1",
			Step:   models.DraftStepReview,
			Format: models.Format7x7,
		},
	})
	s.Require().NoError(err)
	s.Contains(output.Message.Text, "⚠️ Заполни все поля")
}

func (s *MessagingTestSuite) TestErrorMessages() {
	cases := []struct {
		err  error
		want string
	}{
		{signup.ErrInvalidFormat, "Укажи формат"},
		{schedule.ErrInvalidDate, "Неверный формат даты"},
		{schedule.ErrInvalidTime, "Неверный формат времени"},
		{signup.ErrSessionAlreadyActive, "уже запущено голосование"},
		{signup.ErrNoActiveSession, "Активного голосования нет"},
		{signup.ErrNotAuthorized, "только администраторам"},
		{fmt.Errorf("redis down"), "Попробуйте позже"},
	}

	for _, tc := range cases {
		output, err := s.service.GetErrorMessage(s.ctx, &GetErrorMessageInput{Err: tc.err})
		s.Require().NoError(err)
		s.Contains(output.Message.Text, tc.want)
	}
}
