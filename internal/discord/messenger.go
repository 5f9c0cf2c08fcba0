package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// ErrUnknownMessage reports that the message no longer exists on the platform,
// usually because someone deleted it by hand.
var ErrUnknownMessage = errors.New("discord: unknown message")

// ErrInvalidChannel reports a channel target the messenger cannot address.
var ErrInvalidChannel = errors.New("discord: invalid channel target")

// ErrInvalidMessageID reports a message ID that is not a platform snowflake.
var ErrInvalidMessageID = errors.New("discord: invalid message id")

// Messenger delivers embeds to a chat channel. The channel string is the
// configured target: a channel ID for bots, a webhook URL for webhooks.
type Messenger interface {
	Send(ctx context.Context, channel string, embed Embed) (string, error)
	Edit(ctx context.Context, channel, messageID string, embed Embed) error
	Delete(ctx context.Context, channel, messageID string) error
}

// translateError maps platform errors onto package sentinels.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		// A coded 404 may name the channel or webhook instead of the message;
		// only the bare status is trusted when the body carries no code.
		if restErr.Message != nil && restErr.Message.Code != 0 {
			if restErr.Message.Code == discordgo.ErrCodeUnknownMessage {
				return fmt.Errorf("%s: %w", op, ErrUnknownMessage)
			}
		} else if restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", op, ErrUnknownMessage)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func newSession(token string, client *http.Client) (*discordgo.Session, error) {
	session, err := discordgo.New(token)
	if err != nil {
		return nil, err
	}
	if client != nil {
		session.Client = client
	}
	session.MaxRestRetries = 1
	session.ShouldRetryOnRateLimit = false
	return session, nil
}
