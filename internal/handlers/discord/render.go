package discord

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pickupfc/matchday/internal/models"
	"github.com/pickupfc/matchday/internal/services/messaging"
)

// adminPermissions are the permission bits that count as "admin" for
// session management
const adminPermissions = discordgo.PermissionAdministrator | discordgo.PermissionManageServer

// keyboardComponents maps a platform-neutral keyboard onto Discord
// action rows
func keyboardComponents(keyboard messaging.Keyboard) ([]discordgo.MessageComponent, error) {
	if len(keyboard) == 0 {
		return nil, nil
	}

	components := make([]discordgo.MessageComponent, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]discordgo.MessageComponent, 0, len(row))
		for _, b := range row {
			customID, err := encodeEvent(b.Event)
			if err != nil {
				return nil, err
			}
			buttons = append(buttons, discordgo.Button{
				Label:    b.Label,
				Style:    discordgo.SecondaryButton,
				CustomID: customID,
			})
		}
		components = append(components, discordgo.ActionsRow{Components: buttons})
	}

	return components, nil
}

// postMessage sends a catalog message to a channel and returns the
// created Discord message
func postMessage(s *discordgo.Session, channelID string, msg *messaging.Message) (*discordgo.Message, error) {
	components, err := keyboardComponents(msg.Keyboard)
	if err != nil {
		return nil, err
	}

	return s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    msg.Text,
		Components: components,
	})
}

// editMessage rewrites an existing message with a catalog message. An
// "unchanged content" failure is swallowed; any other failure is
// logged and also swallowed, because the state change already
// happened and the render is best effort.
func editMessage(s *discordgo.Session, channelID, messageID string, msg *messaging.Message) {
	components, err := keyboardComponents(msg.Keyboard)
	if err != nil {
		log.Printf("failed to build components for message %s: %v", messageID, err)
		return
	}

	_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Content:    &msg.Text,
		Components: &components,
	})
	if err != nil && !isNotModified(err) {
		log.Printf("failed to edit message %s in channel %s: %v", messageID, channelID, err)
	}
}

// isNotModified reports whether an edit failed only because the
// content did not change
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not modified")
}

// respondUpdate replaces the interaction's own message, used for
// wizard step transitions
func respondUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, msg *messaging.Message) error {
	components, err := keyboardComponents(msg.Keyboard)
	if err != nil {
		return err
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    msg.Text,
			Components: components,
		},
	})
}

// respondMessage answers an interaction with a channel-visible catalog
// message
func respondMessage(s *discordgo.Session, i *discordgo.InteractionCreate, msg *messaging.Message) error {
	components, err := keyboardComponents(msg.Keyboard)
	if err != nil {
		return err
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    msg.Text,
			Components: components,
		},
	})
}

// memberFromInteraction builds the roster profile for the interacting
// user
func memberFromInteraction(i *discordgo.InteractionCreate) *models.Member {
	user := i.User
	nick := ""
	if i.Member != nil {
		user = i.Member.User
		nick = i.Member.Nick
	}
	if user == nil {
		return nil
	}

	firstName := user.GlobalName
	if nick != "" {
		firstName = nick
	}

	return &models.Member{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: firstName,
	}
}

// isAdminInteraction decides the admin capability from the
// interaction member's permission bits. Missing member info means not
// admin.
func isAdminInteraction(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&adminPermissions != 0
}

// isAdminMessage decides the admin capability for a plain channel
// message. A failed lookup means not admin.
func isAdminMessage(s *discordgo.Session, channelID, userID string) bool {
	perms, err := s.UserChannelPermissions(userID, channelID)
	if err != nil {
		log.Printf("failed to check permissions for user %s in channel %s: %v", userID, channelID, err)
		return false
	}
	return perms&adminPermissions != 0
}
