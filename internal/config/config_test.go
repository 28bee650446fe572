package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_CLIENT_ID", "client")
	t.Setenv("DISCORD_GUILD_ID", "guild")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cmr-bot", cfg.ServiceName)
	assert.Equal(t, "team-lists", cfg.TeamListChannel)
	assert.Equal(t, "Team Channels", cfg.TeamCategory)
	assert.Equal(t, "head coach", cfg.HeadCoachRole)
	assert.Equal(t, 2.5, cfg.OpenTierStars)
	assert.Equal(t, 3, cfg.SlashOfferCount)
	assert.Equal(t, 5, cfg.ReactionOfferCount)
	assert.Equal(t, 45*time.Minute, cfg.StreamReminderDelay)
	assert.Equal(t, 4*time.Minute, cfg.SelfPingInterval)
	assert.Empty(t, cfg.SelfPingURL)
}

func TestLoad_MissingDiscordToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("DISCORD_CLIENT_ID", "client")
	t.Setenv("DISCORD_GUILD_ID", "guild")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STREAM_REMINDER_DELAY", "45 minutes")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLASH_OFFER_COUNT", "4")
	t.Setenv("OPEN_TIER_STARS", "3.0")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "https://token@uptrace.example/1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.SlashOfferCount)
	assert.Equal(t, 3.0, cfg.OpenTierStars)
	assert.True(t, cfg.UptraceEnabled)
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	_, err := Load()
	require.Error(t, err)
}
