package discord

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/MatiasXp0/forca-tatica/internal/config"
	"github.com/MatiasXp0/forca-tatica/internal/domain"
)

// NewMessenger selects the transport for the configured mode. Disabled mode
// returns a nil Messenger, which callers treat as "do not sync".
func NewMessenger(cfg config.DiscordConfig, appName string, logger *zap.Logger) (Messenger, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	switch cfg.Mode {
	case config.DiscordModeBot:
		return NewBotMessenger(cfg.BotToken, client)
	case config.DiscordModeWebhook:
		return NewWebhookMessenger(appName, client)
	case config.DiscordModeDryRun:
		return NewDryRunMessenger(logger), nil
	case config.DiscordModeDisabled:
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported discord mode %q", cfg.Mode)
}

// Channels routes each record kind to its configured channel target.
type Channels map[domain.RecordKind]string

// ChannelsFromConfig converts the raw config map, ignoring unknown kinds.
func ChannelsFromConfig(raw map[string]string) Channels {
	channels := make(Channels, len(raw))
	for k, v := range raw {
		kind := domain.RecordKind(k)
		if kind.Valid() && v != "" {
			channels[kind] = v
		}
	}
	return channels
}

// For returns the channel target for kind and whether one is configured.
func (c Channels) For(kind domain.RecordKind) (string, bool) {
	target, ok := c[kind]
	return target, ok && target != ""
}
