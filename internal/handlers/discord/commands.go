package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/pickupfc/matchday/internal/models"
	"github.com/pickupfc/matchday/internal/services/messaging"
	"github.com/pickupfc/matchday/internal/services/setup"
	"github.com/pickupfc/matchday/internal/services/signup"
)

// buildCommands defines the slash command set
func (b *Bot) buildCommands() []CommandHandler {
	formatChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.KnownFormats()))
	for _, f := range models.KnownFormats() {
		formatChoices = append(formatChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(f),
			Value: string(f),
		})
	}

	statusChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "точно", Value: string(models.ScheduleStatusConfirmed)},
		{Name: "ориентировочно", Value: string(models.ScheduleStatusTentative)},
	}

	return []CommandHandler{
		&slashCommand{
			BaseCommand: BaseCommand{
				Name:        "start_vote",
				Description: "Начать сбор на матч",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "format",
						Description: "Формат игры (без него откроется пошаговая настройка)",
						Choices:     formatChoices,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "date",
						Description: "Дата: YYYY-MM-DD, ДД.ММ или сегодня/завтра",
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "time",
						Description: "Время: HH:MM",
					},
				},
			},
			handler: b.handleStartVote,
		},
		&slashCommand{
			BaseCommand: BaseCommand{
				Name:        "set_time",
				Description: "Установить дату и время в настройке",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "date",
						Description: "Дата: YYYY-MM-DD, ДД.ММ или сегодня/завтра",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "time",
						Description: "Время: HH:MM",
						Required:    true,
					},
				},
			},
			handler: b.handleSetTime,
		},
		&slashCommand{
			BaseCommand: BaseCommand{
				Name:        "set_datetime",
				Description: "Изменить дату и время активного голосования",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "date",
						Description: "Дата: YYYY-MM-DD, ДД.ММ или сегодня/завтра",
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "time",
						Description: "Время: HH:MM",
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "status",
						Description: "Насколько точно известны дата и время",
						Choices:     statusChoices,
					},
				},
			},
			handler: b.handleSetDatetime,
		},
		&slashCommand{
			BaseCommand: BaseCommand{
				Name:        "confirm_vote",
				Description: "Запустить голосование из настройки",
			},
			handler: b.handleConfirmVote,
		},
		&slashCommand{
			BaseCommand: BaseCommand{
				Name:        "cancel_setup",
				Description: "Отменить настройку голосования",
			},
			handler: b.handleCancelSetup,
		},
		&slashCommand{
			BaseCommand: BaseCommand{
				Name:        "end_vote",
				Description: "Завершить текущее голосование",
			},
			handler: b.handleEndVote,
		},
	}
}

// optionValue extracts a string option by name, empty if absent
func optionValue(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// handleStartVote starts a session directly when a format is given, or
// opens the setup wizard
func (b *Bot) handleStartVote(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	authorID := ""
	if m := memberFromInteraction(i); m != nil {
		authorID = m.ID
	}

	format := optionValue(i, "format")
	if format == "" {
		output, err := b.setupService.Begin(ctx, &setup.BeginInput{
			RoomID:           i.ChannelID,
			GuildID:          i.GuildID,
			RequesterIsAdmin: isAdminInteraction(i),
		})
		if err != nil {
			return b.respondError(s, i, err)
		}

		promptOutput, err := b.messagingService.GetWizardPrompt(ctx, &messaging.GetWizardPromptInput{
			Draft: output.Draft,
		})
		if err != nil {
			return err
		}
		return respondMessage(s, i, promptOutput.Message)
	}

	// Legacy direct path: format plus optional schedule in one shot
	output, err := b.signupService.StartSession(ctx, &signup.StartSessionInput{
		RoomID:           i.ChannelID,
		GuildID:          i.GuildID,
		AuthorID:         authorID,
		RequesterIsAdmin: isAdminInteraction(i),
		Format:           models.Format(format),
		RawDate:          optionValue(i, "date"),
		RawTime:          optionValue(i, "time"),
	})
	if err != nil {
		return b.respondError(s, i, err)
	}

	return b.announce(s, i, output.Session)
}

// handleSetTime fills the draft's date and time via command
func (b *Bot) handleSetTime(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	if !isAdminInteraction(i) {
		return b.respondError(s, i, setup.ErrNotAuthorized)
	}

	output, err := b.setupService.SetDateTime(ctx, &setup.SetDateTimeInput{
		RoomID:  i.ChannelID,
		RawDate: optionValue(i, "date"),
		RawTime: optionValue(i, "time"),
	})
	if err != nil {
		return b.respondError(s, i, err)
	}

	promptOutput, err := b.messagingService.GetWizardPrompt(ctx, &messaging.GetWizardPromptInput{
		Draft: output.Draft,
	})
	if err != nil {
		return err
	}
	return respondMessage(s, i, promptOutput.Message)
}

// handleSetDatetime changes the schedule of the live session
func (b *Bot) handleSetDatetime(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	output, err := b.signupService.UpdateSchedule(ctx, &signup.UpdateScheduleInput{
		RoomID:           i.ChannelID,
		RequesterIsAdmin: isAdminInteraction(i),
		RawDate:          optionValue(i, "date"),
		RawTime:          optionValue(i, "time"),
		Status:           models.ScheduleStatus(optionValue(i, "status")),
	})
	if err != nil {
		return b.respondError(s, i, err)
	}

	// Refresh the announcement so its schedule line matches
	if output.Session.MessageID != "" {
		tallyOutput, err := b.signupService.GetTally(ctx, &signup.GetTallyInput{
			SessionID: output.Session.ID,
		})
		if err != nil {
			log.Printf("Error loading tally for announcement refresh: %v", err)
		} else {
			msgOutput, err := b.messagingService.GetTallyMessage(ctx, &messaging.GetTallyMessageInput{
				Session: output.Session,
				Tally:   tallyOutput.Tally,
			})
			if err != nil {
				log.Printf("Error building tally message: %v", err)
			} else {
				editMessage(s, i.ChannelID, output.Session.MessageID, msgOutput.Message)
			}
		}
	}

	msgOutput, err := b.messagingService.GetScheduleUpdatedMessage(ctx, &messaging.GetScheduleUpdatedMessageInput{
		Session: output.Session,
	})
	if err != nil {
		return err
	}
	return RespondWithMessage(s, i, msgOutput.Message.Text)
}

// handleConfirmVote launches the session from the draft
func (b *Bot) handleConfirmVote(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	if !isAdminInteraction(i) {
		return b.respondError(s, i, setup.ErrNotAuthorized)
	}

	authorID := ""
	if m := memberFromInteraction(i); m != nil {
		authorID = m.ID
	}

	output, err := b.setupService.Launch(ctx, &setup.LaunchInput{
		RoomID:   i.ChannelID,
		AuthorID: authorID,
	})
	if err != nil {
		return b.respondError(s, i, err)
	}

	return b.announce(s, i, output.Session)
}

// handleCancelSetup discards the draft
func (b *Bot) handleCancelSetup(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	if !isAdminInteraction(i) {
		return b.respondError(s, i, setup.ErrNotAuthorized)
	}

	output, err := b.setupService.Cancel(ctx, &setup.CancelInput{RoomID: i.ChannelID})
	if err != nil {
		return b.respondError(s, i, err)
	}

	msgOutput, err := b.messagingService.GetSetupCanceledMessage(ctx, &messaging.GetSetupCanceledMessageInput{
		Canceled: output.Canceled,
	})
	if err != nil {
		return err
	}
	return RespondWithMessage(s, i, msgOutput.Message.Text)
}

// handleEndVote closes the live session
func (b *Bot) handleEndVote(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	requesterID := ""
	if m := memberFromInteraction(i); m != nil {
		requesterID = m.ID
	}

	_, err := b.signupService.EndSession(ctx, &signup.EndSessionInput{
		RoomID:           i.ChannelID,
		RequesterID:      requesterID,
		RequesterIsAdmin: isAdminInteraction(i),
	})
	if err != nil {
		return b.respondError(s, i, err)
	}

	msgOutput, err := b.messagingService.GetSessionEndedMessage(ctx, &messaging.GetSessionEndedMessageInput{})
	if err != nil {
		return err
	}
	return RespondWithMessage(s, i, msgOutput.Message.Text)
}

// announce posts the launch announcement as the interaction response
// and stores its message ref on the session
func (b *Bot) announce(s *discordgo.Session, i *discordgo.InteractionCreate, session *models.Session) error {
	ctx := context.Background()

	launchOutput, err := b.messagingService.GetLaunchMessage(ctx, &messaging.GetLaunchMessageInput{
		Session: session,
	})
	if err != nil {
		return err
	}

	if err := respondMessage(s, i, launchOutput.Message); err != nil {
		return err
	}

	// The response had to land before its message ID exists
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Printf("Error fetching announcement message for session %d: %v", session.ID, err)
		return nil
	}

	if err := b.signupService.SetAnnouncement(ctx, &signup.SetAnnouncementInput{
		SessionID: session.ID,
		MessageID: msg.ID,
	}); err != nil {
		log.Printf("Error storing announcement ref for session %d: %v", session.ID, err)
	}

	return nil
}
