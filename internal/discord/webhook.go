package discord

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// WebhookMessenger posts through per-channel webhooks; no bot token involved.
type WebhookMessenger struct {
	session  *discordgo.Session
	username string
}

// NewWebhookMessenger builds a webhook messenger. username overrides the
// webhook's display name when set.
func NewWebhookMessenger(username string, client *http.Client) (*WebhookMessenger, error) {
	session, err := newSession("", client)
	if err != nil {
		return nil, err
	}
	return &WebhookMessenger{session: session, username: username}, nil
}

// Send executes the webhook and waits for the created message.
func (m *WebhookMessenger) Send(ctx context.Context, channel string, embed Embed) (string, error) {
	id, token, err := ParseWebhookURL(channel)
	if err != nil {
		return "", err
	}
	params := &discordgo.WebhookParams{
		Username: m.username,
		Embeds:   []*discordgo.MessageEmbed{embed.toMessageEmbed()},
	}
	msg, err := m.session.WebhookExecute(id, token, true, params, discordgo.WithContext(ctx))
	if err != nil {
		return "", translateError("send", err)
	}
	if msg == nil {
		return "", fmt.Errorf("send: webhook returned no message")
	}
	return msg.ID, nil
}

// Edit replaces the embed of a message previously sent by the same webhook.
func (m *WebhookMessenger) Edit(ctx context.Context, channel, messageID string, embed Embed) error {
	id, token, err := ParseWebhookURL(channel)
	if err != nil {
		return err
	}
	if err := validateMessageID(messageID); err != nil {
		return err
	}
	embeds := []*discordgo.MessageEmbed{embed.toMessageEmbed()}
	_, err = m.session.WebhookMessageEdit(id, token, messageID, &discordgo.WebhookEdit{Embeds: &embeds}, discordgo.WithContext(ctx))
	return translateError("edit", err)
}

// Delete removes a message previously sent by the same webhook.
func (m *WebhookMessenger) Delete(ctx context.Context, channel, messageID string) error {
	id, token, err := ParseWebhookURL(channel)
	if err != nil {
		return err
	}
	if err := validateMessageID(messageID); err != nil {
		return err
	}
	return translateError("delete", m.session.WebhookMessageDelete(id, token, messageID, discordgo.WithContext(ctx)))
}

// ParseWebhookURL extracts the webhook ID and token from
// https://discord.com/api/webhooks/{id}/{token}.
func ParseWebhookURL(raw string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != "https" {
		return "", "", ErrInvalidChannel
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" {
			id, token := parts[i+1], parts[i+2]
			if validateChannelID(id) != nil || token == "" {
				return "", "", ErrInvalidChannel
			}
			return id, token, nil
		}
	}
	return "", "", ErrInvalidChannel
}
