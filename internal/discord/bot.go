package discord

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// BotMessenger posts through the REST API authenticated with a bot token.
type BotMessenger struct {
	session *discordgo.Session
}

// NewBotMessenger builds a messenger for the given bot token. A nil client
// keeps the library default.
func NewBotMessenger(token string, client *http.Client) (*BotMessenger, error) {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, "Bot ") {
		token = "Bot " + token
	}
	session, err := newSession(token, client)
	if err != nil {
		return nil, err
	}
	return &BotMessenger{session: session}, nil
}

// Send posts a new embed message and returns its ID.
func (m *BotMessenger) Send(ctx context.Context, channel string, embed Embed) (string, error) {
	if err := validateChannelID(channel); err != nil {
		return "", err
	}
	msg, err := m.session.ChannelMessageSendEmbed(channel, embed.toMessageEmbed(), discordgo.WithContext(ctx))
	if err != nil {
		return "", translateError("send", err)
	}
	return msg.ID, nil
}

// Edit replaces the embed of an existing message.
func (m *BotMessenger) Edit(ctx context.Context, channel, messageID string, embed Embed) error {
	if err := validateChannelID(channel); err != nil {
		return err
	}
	if err := validateMessageID(messageID); err != nil {
		return err
	}
	_, err := m.session.ChannelMessageEditEmbed(channel, messageID, embed.toMessageEmbed(), discordgo.WithContext(ctx))
	return translateError("edit", err)
}

// Delete removes a message.
func (m *BotMessenger) Delete(ctx context.Context, channel, messageID string) error {
	if err := validateChannelID(channel); err != nil {
		return err
	}
	if err := validateMessageID(messageID); err != nil {
		return err
	}
	return translateError("delete", m.session.ChannelMessageDelete(channel, messageID, discordgo.WithContext(ctx)))
}

// ValidSnowflake reports whether id is a non-empty run of digits. IDs end up
// in REST paths, so anything else is refused.
func ValidSnowflake(id string) bool {
	if id == "" || len(id) > 20 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateChannelID(channel string) error {
	if !ValidSnowflake(channel) {
		return ErrInvalidChannel
	}
	return nil
}

func validateMessageID(messageID string) error {
	if !ValidSnowflake(messageID) {
		return ErrInvalidMessageID
	}
	return nil
}
