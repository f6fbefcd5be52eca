// Package discord implements the messenger interface against the Discord
// REST API.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/chris/splitwise-sync/pkg/messenger"
)

// Messenger sends and deletes channel messages through a Discord bot.
type Messenger struct {
	session *discordgo.Session
}

// New creates a Messenger authenticated with the given bot token. Only the
// REST client is used; no gateway connection is opened.
func New(botToken string) (*Messenger, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &Messenger{session: session}, nil
}

// Make sure we conform to the interface
var _ messenger.Messenger = (*Messenger)(nil)

// SendMessage posts the message with its buttons in a single action row.
func (m *Messenger) SendMessage(ctx context.Context, channelID string, msg messenger.Message) (string, error) {
	send := &discordgo.MessageSend{Content: msg.Content}

	if len(msg.Buttons) > 0 {
		row := discordgo.ActionsRow{}
		for _, b := range msg.Buttons {
			style := discordgo.SecondaryButton
			if b.Primary {
				style = discordgo.PrimaryButton
			}
			row.Components = append(row.Components, discordgo.Button{
				Label:    b.Label,
				Style:    style,
				CustomID: b.CustomID,
			})
		}
		send.Components = []discordgo.MessageComponent{row}
	}

	created, err := m.session.ChannelMessageSendComplex(channelID, send, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send discord message: %w", err)
	}
	return created.ID, nil
}

// DeleteMessage removes a message from a channel.
func (m *Messenger) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := m.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete discord message %s: %w", messageID, err)
	}
	return nil
}
