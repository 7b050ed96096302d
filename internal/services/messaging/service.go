package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pickupfc/matchday/internal/events"
	"github.com/pickupfc/matchday/internal/models"
	"github.com/pickupfc/matchday/internal/schedule"
	"github.com/pickupfc/matchday/internal/services/setup"
	"github.com/pickupfc/matchday/internal/services/signup"
)

// maxListedPlayers caps how many members a tally list renders by name
const maxListedPlayers = 100

// playersPerRow is how many numbered entries share a line in a long
// tally list
const playersPerRow = 3

// service implements the Service interface
type service struct {
}

// NewService creates a new messaging service
func NewService(cfg *Config) (*service, error) {
	return &service{}, nil
}

// Config holds configuration for the messaging service
type Config struct {
}

// GetLaunchMessage returns the announcement posted when a session goes
// live
func (s *service) GetLaunchMessage(ctx context.Context, input *GetLaunchMessageInput) (*GetLaunchMessageOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	session := input.Session

	var b strings.Builder
	b.WriteString("⚽ Голосование началось!\n")
	fmt.Fprintf(&b, "Формат: %s (нужно %d игроков)", session.Format, session.NeededPlayers)
	if line := schedule.RenderScheduleLine(session.Date, session.Time, session.Status); line != "" {
		b.WriteString("\n" + line)
	}
	b.WriteString("\n\nКто играет?")

	return &GetLaunchMessageOutput{
		Message: &Message{
			Text:     b.String(),
			Keyboard: voteKeyboard(session.ID),
		},
	}, nil
}

// GetTallyMessage returns the announcement body after a vote
func (s *service) GetTallyMessage(ctx context.Context, input *GetTallyMessageInput) (*GetTallyMessageOutput, error) {
	if input == nil || input.Session == nil || input.Tally == nil {
		return nil, errors.New("input, session and tally cannot be nil")
	}

	session := input.Session
	tally := input.Tally

	var b strings.Builder
	fmt.Fprintf(&b, "⚽ Формат: %s", session.Format)
	if line := schedule.RenderScheduleLine(session.Date, session.Time, session.Status); line != "" {
		b.WriteString("\n" + line)
	}
	fmt.Fprintf(&b, "\n✅ Играют: %s", formatPlayersList(tally.Yes))
	fmt.Fprintf(&b, "\n❌ Не играют: %s", formatPlayersList(tally.No))
	fmt.Fprintf(&b, "\n🤔 Думают: %s", formatPlayersList(tally.Maybe))
	fmt.Fprintf(&b, "\n\nИгроков нужно: %d, уже есть: %d", session.NeededPlayers, len(tally.Yes))

	return &GetTallyMessageOutput{
		Message: &Message{
			Text:     b.String(),
			Keyboard: voteKeyboard(session.ID),
		},
	}, nil
}

// GetQuotaReachedMessage returns the celebration posted when the yes
// quota fills
func (s *service) GetQuotaReachedMessage(ctx context.Context, input *GetQuotaReachedMessageInput) (*GetQuotaReachedMessageOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	return &GetQuotaReachedMessageOutput{
		Message: &Message{
			Text: fmt.Sprintf("🎉 Набралось %d игроков! Матч состоится! Сбор закрыт ✅", input.Session.NeededPlayers),
		},
	}, nil
}

// GetVoteAckMessage returns the ephemeral acknowledgment for a cast
// vote
func (s *service) GetVoteAckMessage(ctx context.Context, input *GetVoteAckMessageInput) (*GetVoteAckMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	text := "Голос учтён!"
	if !input.Changed {
		text = "Без изменений: ваш голос уже учтён."
	}

	return &GetVoteAckMessageOutput{
		Message: &Message{Text: text},
	}, nil
}

// GetSessionEndedMessage returns the confirmation for a manual end
func (s *service) GetSessionEndedMessage(ctx context.Context, input *GetSessionEndedMessageInput) (*GetSessionEndedMessageOutput, error) {
	return &GetSessionEndedMessageOutput{
		Message: &Message{
			Text: "✅ Голосование завершено. Можно запустить новое: /start_vote",
		},
	}, nil
}

// GetScheduleUpdatedMessage confirms a date/time change on a live
// session
func (s *service) GetScheduleUpdatedMessage(ctx context.Context, input *GetScheduleUpdatedMessageInput) (*GetScheduleUpdatedMessageOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	session := input.Session
	text := "✅ Дата и время обновлены!"
	if line := schedule.RenderScheduleLine(session.Date, session.Time, session.Status); line != "" {
		text += "\n" + line
	}

	return &GetScheduleUpdatedMessageOutput{
		Message: &Message{Text: text},
	}, nil
}

// GetWizardPrompt returns the prompt and keyboard for the draft's
// current step
func (s *service) GetWizardPrompt(ctx context.Context, input *GetWizardPromptInput) (*GetWizardPromptOutput, error) {
	if input == nil || input.Draft == nil {
		return nil, errors.New("input and draft cannot be nil")
	}

	d := input.Draft

	var msg *Message
	switch d.Step {
	case models.DraftStepFormat:
		msg = formatPrompt()
	case models.DraftStepStatus:
		msg = statusPrompt(d)
	case models.DraftStepDate:
		msg = datePrompt(d)
	case models.DraftStepTime:
		msg = timePrompt(d)
	case models.DraftStepReview:
		msg = reviewCard(d)
	default:
		return nil, fmt.Errorf("unknown wizard step %q", d.Step)
	}

	return &GetWizardPromptOutput{Message: msg}, nil
}

// GetSetupCanceledMessage confirms a wizard cancellation
func (s *service) GetSetupCanceledMessage(ctx context.Context, input *GetSetupCanceledMessageInput) (*GetSetupCanceledMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	text := "✅ Настройка голосования отменена. Начни заново командой /start_vote"
	if !input.Canceled {
		text = "ℹ️ Нет активной настройки для отмены."
	}

	return &GetSetupCanceledMessageOutput{
		Message: &Message{Text: text},
	}, nil
}

// GetReminderMessage returns the nudge for members who have not voted
func (s *service) GetReminderMessage(ctx context.Context, input *GetReminderMessageInput) (*GetReminderMessageOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}

	if len(input.NonVoters) == 0 {
		return nil, errors.New("non-voter list cannot be empty")
	}

	session := input.Session

	var b strings.Builder
	b.WriteString("⏰ Напоминание! Проголосуйте, если ещё не отметились.")
	if link := announcementLink(session); link != "" {
		b.WriteString(" " + link)
	}
	b.WriteString("\n")

	mentions := make([]string, 0, len(input.NonVoters))
	for _, m := range input.NonVoters {
		mentions = append(mentions, mention(m))
	}
	b.WriteString(strings.Join(mentions, ", "))

	return &GetReminderMessageOutput{
		Message: &Message{Text: b.String()},
	}, nil
}

// GetErrorMessage maps a service error to a user-visible notice
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	var text string
	switch {
	case errors.Is(input.Err, signup.ErrInvalidFormat), errors.Is(input.Err, setup.ErrInvalidFormat):
		text = "⚠️ Укажи формат: 6x6 | 7x7 | 8x8 | 9x9"
	case errors.Is(input.Err, schedule.ErrInvalidDate):
		text = "⚠️ Неверный формат даты. Используй YYYY-MM-DD (например: 2025-09-22)"
	case errors.Is(input.Err, schedule.ErrInvalidTime):
		text = "⚠️ Неверный формат времени. Используй HH:MM (например: 19:00)"
	case errors.Is(input.Err, signup.ErrSessionAlreadyActive), errors.Is(input.Err, setup.ErrSessionActive):
		text = "⚠️ В этом чате уже запущено голосование.\nЧтобы начать новое, завершите текущее командой /end_vote."
	case errors.Is(input.Err, signup.ErrNoActiveSession):
		text = "⚠️ Активного голосования нет. Запустить: /start_vote"
	case errors.Is(input.Err, signup.ErrNotAuthorized), errors.Is(input.Err, setup.ErrNotAuthorized):
		text = "🚫 Это действие доступно только администраторам или автору голосования."
	case errors.Is(input.Err, setup.ErrDraftNotFound):
		text = "ℹ️ Сначала выбери формат командой /start_vote"
	case errors.Is(input.Err, signup.ErrIncompleteDraft), errors.Is(input.Err, setup.ErrIncompleteDraft):
		text = "⚠️ Заполни все поля: формат, дату и время. Потом запускай."
	default:
		text = "🚫 Что-то пошло не так. Попробуйте позже."
	}

	return &GetErrorMessageOutput{
		Message: &Message{Text: text},
	}, nil
}

// voteKeyboard is the three-choice keyboard attached to every
// announcement
func voteKeyboard(sessionID int64) Keyboard {
	return Keyboard{
		{{Label: "✅ Играю", Event: events.Vote(sessionID, models.VoteYes)}},
		{{Label: "🤔 Не знаю", Event: events.Vote(sessionID, models.VoteMaybe)}},
		{{Label: "❌ Не играю", Event: events.Vote(sessionID, models.VoteNo)}},
	}
}

func formatPrompt() *Message {
	row := ButtonRow{}
	for _, f := range models.KnownFormats() {
		row = append(row, Button{
			Label: string(f),
			Event: events.SetupFormat(f),
		})
	}

	return &Message{
		Text: "⚽ Настройка голосования\n\nВыбери формат игры:",
		Keyboard: Keyboard{
			row,
			{cancelButton()},
		},
	}
}

func statusPrompt(d *models.Draft) *Message {
	return &Message{
		Text: fmt.Sprintf("⚽ Формат выбран: %s (нужно %d игроков)\n\nДата и время уже известны точно?", d.Format, d.Format.NeededPlayers()),
		Keyboard: Keyboard{
			{
				{Label: "✅ Да, точно", Event: events.SetupStatus(models.ScheduleStatusConfirmed)},
				{Label: "🤔 Пока ориентировочно", Event: events.SetupStatus(models.ScheduleStatusTentative)},
			},
			{cancelButton()},
		},
	}
}

func datePrompt(d *models.Draft) *Message {
	return &Message{
		Text: "📅 Выбери дату или напиши её сообщением:\n• YYYY-MM-DD (например: 2025-09-22)\n• ДД.ММ (например: 22.09)\n• Или сразу дату и время: 2025-09-22 19:00",
		Keyboard: Keyboard{
			{
				{Label: "Сегодня", Event: events.SetupDate("сегодня")},
				{Label: "Завтра", Event: events.SetupDate("завтра")},
				{Label: "Послезавтра", Event: events.SetupDate("послезавтра")},
			},
			{cancelButton()},
		},
	}
}

func timePrompt(d *models.Draft) *Message {
	text := "🕐 Напиши время сообщением в формате HH:MM (например: 19:00)"
	if d.Date != "" {
		text = fmt.Sprintf("📅 Дата: %s\n\n%s", d.Date, text)
	}
	return &Message{
		Text: text,
		Keyboard: Keyboard{
			{cancelButton()},
		},
	}
}

func reviewCard(d *models.Draft) *Message {
	var b strings.Builder
	b.WriteString("📋 Текущие настройки:\n")
	if d.Format != "" {
		fmt.Fprintf(&b, "⚽ Формат: %s (нужно %d игроков)\n", d.Format, d.Format.NeededPlayers())
	} else {
		b.WriteString("⚽ Формат: не выбран\n")
	}
	b.WriteString(schedule.RenderScheduleLine(d.Date, d.Time, schedule.ResolveStatus(d.Status, d.Date, d.Time)))

	if !d.IsComplete() {
		b.WriteString("\n\n⚠️ Заполни все поля: формат, дату и время. Потом запускай.")
	} else {
		b.WriteString("\n\n🚀 Запусти голосование:")
	}

	return &Message{
		Text: b.String(),
		Keyboard: Keyboard{
			{{Label: "🚀 Запустить", Event: events.SetupLaunch()}},
			{
				{Label: "Изменить формат", Event: events.SetupJump(models.DraftStepFormat)},
				{Label: "Изменить дату", Event: events.SetupJump(models.DraftStepDate)},
				{Label: "Изменить время", Event: events.SetupJump(models.DraftStepTime)},
			},
			{cancelButton()},
		},
	}
}

func cancelButton() Button {
	return Button{Label: "🚫 Отменить", Event: events.SetupCancel()}
}

// formatPlayersList renders a tally bucket: up to three names inline,
// longer lists numbered three per row, with an overflow suffix past
// maxListedPlayers
func formatPlayersList(players []*models.Member) string {
	if len(players) == 0 {
		return "нет"
	}

	display := players
	remaining := 0
	if len(display) > maxListedPlayers {
		remaining = len(display) - maxListedPlayers
		display = display[:maxListedPlayers]
	}

	var result string
	if len(display) <= playersPerRow {
		names := make([]string, 0, len(display))
		for _, p := range display {
			names = append(names, displayName(p))
		}
		result = strings.Join(names, ", ")
	} else {
		lines := make([]string, 0, (len(display)+playersPerRow-1)/playersPerRow)
		for i := 0; i < len(display); i += playersPerRow {
			end := i + playersPerRow
			if end > len(display) {
				end = len(display)
			}
			entries := make([]string, 0, playersPerRow)
			for j := i; j < end; j++ {
				entries = append(entries, fmt.Sprintf("%d. %s", j+1, displayName(display[j])))
			}
			lines = append(lines, strings.Join(entries, "  "))
		}
		result = strings.Join(lines, "\n")
	}

	if remaining > 0 {
		result += fmt.Sprintf("\n...и ещё %d %s", remaining, getPlayerWord(remaining))
	}

	return result
}

// getPlayerWord declines "игрок" for a Russian count
func getPlayerWord(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "игрок"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "игрока"
	}
	return "игроков"
}

func displayName(m *models.Member) string {
	if name := m.DisplayName(); name != "" {
		return name
	}
	return "Пользователь " + m.ID
}

func mention(m *models.Member) string {
	return fmt.Sprintf("<@%s>", m.ID)
}

// announcementLink builds a deep link to the announcement message, if
// the refs for one exist
func announcementLink(session *models.Session) string {
	if session.MessageID == "" || session.GuildID == "" || session.RoomID == "" {
		return ""
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", session.GuildID, session.RoomID, session.MessageID)
}
