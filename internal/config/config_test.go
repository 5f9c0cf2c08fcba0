package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_MODE", "")
	t.Setenv("DISCORD_CHANNELS_FILE", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DiscordModeDryRun, cfg.Discord.Mode)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Minute, cfg.Cache.TTL())
	assert.NotNil(t, cfg.Discord.Channels)
}

func TestLoad_ChannelEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "channels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels:\n  announcement: \"111\"\n  vehicle: \"222\"\n"), 0o600))

	t.Setenv("DISCORD_MODE", "webhook")
	t.Setenv("DISCORD_CHANNELS_FILE", path)
	t.Setenv("DISCORD_CHANNEL_VEHICLE", "https://discord.com/api/webhooks/9/tok")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DiscordModeWebhook, cfg.Discord.Mode)
	assert.Equal(t, "111", cfg.Discord.Channels["announcement"])
	assert.Equal(t, "https://discord.com/api/webhooks/9/tok", cfg.Discord.Channels["vehicle"])
}

func TestLoad_InvalidMode(t *testing.T) {
	t.Setenv("DISCORD_MODE", "carrier-pigeon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BotModeRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_MODE", "bot")
	t.Setenv("DISCORD_BOT_TOKEN", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DISCORD_BOT_TOKEN")
}

func TestLoadChannels_UnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels:\n  tickets: \"1\"\n"), 0o600))

	_, err := LoadChannels(path)
	assert.ErrorContains(t, err, "unknown record kind")
}

func TestLoadChannels_EmptyPath(t *testing.T) {
	channels, err := LoadChannels("  ")
	require.NoError(t, err)
	assert.Empty(t, channels)
}
