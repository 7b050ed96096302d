package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pickupfc/matchday/internal/events"
	"github.com/pickupfc/matchday/internal/models"
	memberRepo "github.com/pickupfc/matchday/internal/repositories/member"
	"github.com/pickupfc/matchday/internal/services/messaging"
	"github.com/pickupfc/matchday/internal/services/setup"
	"github.com/pickupfc/matchday/internal/services/signup"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID

	signupService    signup.Service
	setupService     setup.Service
	messagingService messaging.Service
	memberRepo       memberRepo.Repository

	config *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Signup service
	SignupService signup.Service

	// Setup wizard service
	SetupService setup.Service

	// Messaging service
	MessagingService messaging.Service

	// Member repository for roster upkeep
	MemberRepo memberRepo.Repository
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.SignupService == nil || cfg.SetupService == nil || cfg.MessagingService == nil {
		return nil, errors.New("services cannot be nil")
	}

	if cfg.MemberRepo == nil {
		return nil, errors.New("member repository cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Membership events and typed date/time input need these intents
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	bot := &Bot{
		session:          session,
		commands:         make(map[string]CommandHandler),
		commandIDs:       make(map[string]string),
		signupService:    cfg.SignupService,
		setupService:     cfg.SetupService,
		messagingService: cfg.MessagingService,
		memberRepo:       cfg.MemberRepo,
		config:           cfg,
	}

	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleGuildMemberAdd)
	session.AddHandler(bot.handleGuildMemberRemove)
	session.AddHandler(bot.handleMessageCreate)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	for _, cmd := range b.buildCommands() {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, guildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		} else {
			log.Printf("Successfully deleted command %s (ID: %s)", cmdName, cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// Register the command with Discord
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

// Notify posts a reminder text to a room. It implements the reminder
// service's Notifier.
func (b *Bot) Notify(ctx context.Context, roomID string, text string) error {
	_, err := b.session.ChannelMessageSend(roomID, text)
	return err
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction decodes a button press and routes it
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	event, err := decodeEvent(customID)
	if err != nil {
		log.Printf("Unknown component payload %q: %v", customID, err)
		return RespondWithEphemeralMessage(s, i, "🚫 Эта кнопка больше не работает.")
	}

	if event.Kind == events.KindVote {
		return b.handleVoteButton(s, i, event)
	}
	return b.handleSetupButton(s, i, event)
}

// handleVoteButton records a member's choice and refreshes the
// announcement
func (b *Bot) handleVoteButton(s *discordgo.Session, i *discordgo.InteractionCreate, event events.Event) error {
	ctx := context.Background()

	member := memberFromInteraction(i)
	if member == nil {
		return RespondWithEphemeralMessage(s, i, "🚫 Что-то пошло не так. Попробуйте позже.")
	}

	output, err := b.signupService.RecordVote(ctx, &signup.RecordVoteInput{
		SessionID: event.SessionID,
		Member:    member,
		Choice:    event.Choice,
	})
	if err != nil {
		if errors.Is(err, signup.ErrNoActiveSession) || errors.Is(err, signup.ErrSessionNotFound) {
			return RespondWithEphemeralMessage(s, i, "⚠️ Голосование не активно")
		}
		return b.respondError(s, i, err)
	}

	// The render is best effort; the vote is already stored
	if output.Session.MessageID != "" {
		tallyOutput, err := b.messagingService.GetTallyMessage(ctx, &messaging.GetTallyMessageInput{
			Session: output.Session,
			Tally:   output.Tally,
		})
		if err != nil {
			log.Printf("Error building tally message: %v", err)
		} else {
			editMessage(s, i.ChannelID, output.Session.MessageID, tallyOutput.Message)
		}
	}

	ackOutput, err := b.messagingService.GetVoteAckMessage(ctx, &messaging.GetVoteAckMessageInput{
		Changed: output.Changed,
	})
	if err != nil {
		return err
	}
	if err := RespondWithEphemeralMessage(s, i, ackOutput.Message.Text); err != nil {
		log.Printf("Error acknowledging vote: %v", err)
	}

	if output.Closed {
		quotaOutput, err := b.messagingService.GetQuotaReachedMessage(ctx, &messaging.GetQuotaReachedMessageInput{
			Session: output.Session,
		})
		if err != nil {
			return err
		}
		if _, err := postMessage(s, i.ChannelID, quotaOutput.Message); err != nil {
			log.Printf("Error posting quota message: %v", err)
		}
	}

	return nil
}

// handleSetupButton routes a wizard button press. Every wizard action
// is admin-only.
func (b *Bot) handleSetupButton(s *discordgo.Session, i *discordgo.InteractionCreate, event events.Event) error {
	ctx := context.Background()

	if !isAdminInteraction(i) {
		return b.respondError(s, i, setup.ErrNotAuthorized)
	}

	roomID := i.ChannelID

	var (
		draft *models.Draft
		err   error
	)
	switch event.Kind {
	case events.KindSetupFormat:
		var output *setup.ChooseFormatOutput
		output, err = b.setupService.ChooseFormat(ctx, &setup.ChooseFormatInput{
			RoomID: roomID,
			Format: event.Format,
		})
		if err == nil {
			draft = output.Draft
		}
	case events.KindSetupStatus:
		var output *setup.ChooseStatusOutput
		output, err = b.setupService.ChooseStatus(ctx, &setup.ChooseStatusInput{
			RoomID: roomID,
			Status: event.Status,
		})
		if err == nil {
			draft = output.Draft
		}
	case events.KindSetupDate:
		var output *setup.ChooseDateOutput
		output, err = b.setupService.ChooseDate(ctx, &setup.ChooseDateInput{
			RoomID:  roomID,
			RawDate: event.Date,
		})
		if err == nil {
			draft = output.Draft
		}
	case events.KindSetupJump:
		var output *setup.JumpToOutput
		output, err = b.setupService.JumpTo(ctx, &setup.JumpToInput{
			RoomID: roomID,
			Step:   event.Step,
		})
		if err == nil {
			draft = output.Draft
		}
	case events.KindSetupLaunch:
		return b.handleSetupLaunch(s, i)
	case events.KindSetupCancel:
		return b.handleSetupCancel(s, i)
	default:
		return RespondWithEphemeralMessage(s, i, "🚫 Эта кнопка больше не работает.")
	}

	if err != nil {
		return b.respondError(s, i, err)
	}

	return b.respondWizardPrompt(s, i, draft)
}

// handleSetupLaunch turns the wizard message into the live
// announcement
func (b *Bot) handleSetupLaunch(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	authorID := ""
	if m := memberFromInteraction(i); m != nil {
		authorID = m.ID
	}

	output, err := b.setupService.Launch(ctx, &setup.LaunchInput{
		RoomID:   i.ChannelID,
		AuthorID: authorID,
	})
	if err != nil {
		if errors.Is(err, setup.ErrIncompleteDraft) {
			// Stay on review with the fill-all-fields notice
			return b.respondWizardPrompt(s, i, nil)
		}
		return b.respondError(s, i, err)
	}

	launchOutput, err := b.messagingService.GetLaunchMessage(ctx, &messaging.GetLaunchMessageInput{
		Session: output.Session,
	})
	if err != nil {
		return err
	}

	// The wizard message becomes the announcement
	if err := respondUpdate(s, i, launchOutput.Message); err != nil {
		return err
	}

	if i.Message != nil {
		if err := b.signupService.SetAnnouncement(ctx, &signup.SetAnnouncementInput{
			SessionID: output.Session.ID,
			MessageID: i.Message.ID,
		}); err != nil {
			log.Printf("Error storing announcement ref for session %d: %v", output.Session.ID, err)
		}
	}

	return nil
}

// handleSetupCancel discards the draft and retires the wizard message
func (b *Bot) handleSetupCancel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

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

	return respondUpdate(s, i, msgOutput.Message)
}

// respondWizardPrompt replaces the wizard message with the prompt for
// the draft's current step. A nil draft reloads it first.
func (b *Bot) respondWizardPrompt(s *discordgo.Session, i *discordgo.InteractionCreate, draft *models.Draft) error {
	ctx := context.Background()

	if draft == nil {
		output, err := b.setupService.GetDraft(ctx, &setup.GetDraftInput{RoomID: i.ChannelID})
		if err != nil {
			return b.respondError(s, i, err)
		}
		draft = output.Draft
	}

	promptOutput, err := b.messagingService.GetWizardPrompt(ctx, &messaging.GetWizardPromptInput{
		Draft: draft,
	})
	if err != nil {
		return err
	}

	return respondUpdate(s, i, promptOutput.Message)
}

// respondError maps a service error to its user-visible notice,
// delivered ephemerally
func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	output, msgErr := b.messagingService.GetErrorMessage(context.Background(), &messaging.GetErrorMessageInput{
		Err: err,
	})
	if msgErr != nil {
		return msgErr
	}
	return RespondWithEphemeralMessage(s, i, output.Message.Text)
}

// handleGuildMemberAdd stores the profile of a newly joined member
func (b *Bot) handleGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil || m.User.Bot {
		return
	}

	err := b.memberRepo.Save(context.Background(), &memberRepo.SaveMemberInput{
		Member: &models.Member{
			ID:        m.User.ID,
			Username:  m.User.Username,
			FirstName: m.User.GlobalName,
		},
	})
	if err != nil {
		log.Printf("Error saving joined member %s: %v", m.User.ID, err)
	}
}

// handleGuildMemberRemove drops a departed member's profile
func (b *Bot) handleGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.User == nil {
		return
	}

	err := b.memberRepo.Remove(context.Background(), &memberRepo.RemoveMemberInput{
		MemberID: m.User.ID,
	})
	if err != nil {
		log.Printf("Error removing member %s: %v", m.User.ID, err)
	}
}

// handleMessageCreate keeps the room roster fresh and feeds typed
// date/time input into an open wizard
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx := context.Background()

	// Any message is proof of presence in the room
	member := &models.Member{
		ID:        m.Author.ID,
		Username:  m.Author.Username,
		FirstName: m.Author.GlobalName,
	}
	if m.Member != nil && m.Member.Nick != "" {
		member.FirstName = m.Member.Nick
	}
	if err := b.memberRepo.Save(ctx, &memberRepo.SaveMemberInput{
		RoomID: m.ChannelID,
		Member: member,
	}); err != nil {
		log.Printf("Error saving member %s: %v", m.Author.ID, err)
	}

	text := strings.TrimSpace(m.Content)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}

	draftOutput, err := b.setupService.GetDraft(ctx, &setup.GetDraftInput{RoomID: m.ChannelID})
	if err != nil {
		// No wizard in progress; plain chatter
		return
	}
	draft := draftOutput.Draft

	// A "YYYY-MM-DD HH:MM" pair fills both fields from any step
	parts := strings.Fields(text)
	if len(parts) == 2 {
		if !isAdminMessage(s, m.ChannelID, m.Author.ID) {
			return
		}
		output, err := b.setupService.SetDateTime(ctx, &setup.SetDateTimeInput{
			RoomID:  m.ChannelID,
			RawDate: parts[0],
			RawTime: parts[1],
		})
		if err != nil {
			// Not a date/time pair after all; leave the chatter alone
			return
		}
		b.postWizardPrompt(s, m.ChannelID, output.Draft)
		return
	}

	if len(parts) != 1 {
		return
	}

	switch draft.Step {
	case models.DraftStepDate:
		if !isAdminMessage(s, m.ChannelID, m.Author.ID) {
			return
		}
		output, err := b.setupService.ChooseDate(ctx, &setup.ChooseDateInput{
			RoomID:  m.ChannelID,
			RawDate: text,
		})
		if err != nil {
			return
		}
		b.postWizardPrompt(s, m.ChannelID, output.Draft)
	case models.DraftStepTime:
		if !isAdminMessage(s, m.ChannelID, m.Author.ID) {
			return
		}
		output, err := b.setupService.ChooseTime(ctx, &setup.ChooseTimeInput{
			RoomID:  m.ChannelID,
			RawTime: text,
		})
		if err != nil {
			return
		}
		b.postWizardPrompt(s, m.ChannelID, output.Draft)
	}
}

// postWizardPrompt posts the prompt for the draft's current step as a
// fresh message
func (b *Bot) postWizardPrompt(s *discordgo.Session, channelID string, draft *models.Draft) {
	promptOutput, err := b.messagingService.GetWizardPrompt(context.Background(), &messaging.GetWizardPromptInput{
		Draft: draft,
	})
	if err != nil {
		log.Printf("Error building wizard prompt: %v", err)
		return
	}
	if _, err := postMessage(s, channelID, promptOutput.Message); err != nil {
		log.Printf("Error posting wizard prompt: %v", err)
	}
}
