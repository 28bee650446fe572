package discord

import (
	"fmt"
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"
)

var (
	streamLinkRe  = regexp.MustCompile(`(?i)https?://(www\.)?(youtube\.com|youtu\.be|twitch\.tv)/\S+`)
	gameContextRe = regexp.MustCompile(`(?i)\b(live|stream|game|watch|vs|playing)\b`)
)

// maybeScheduleStreamReminder watches team channels for stream links posted
// with game context and nudges the poster to submit a result once the delay
// elapses. One pending reminder per user.
func (b *Bot) maybeScheduleStreamReminder(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !streamLinkRe.MatchString(m.Content) || !gameContextRe.MatchString(m.Content) {
		return
	}
	if !b.isTeamChannel(s, m.ChannelID) {
		return
	}

	userID := m.Author.ID
	if _, loaded := b.pendingReminders.LoadOrStore(userID, struct{}{}); loaded {
		return
	}

	b.logger.Info("stream reminder scheduled",
		"user", userID,
		"channel", m.ChannelID,
		"delay", b.cfg.StreamReminderDelay,
	)

	channelID := m.ChannelID
	time.AfterFunc(b.cfg.StreamReminderDelay, func() {
		b.pendingReminders.Delete(userID)

		msg := fmt.Sprintf("<@%s> Friendly reminder! Please share your game results using the `/game-result` command 😊", userID)
		if _, err := s.ChannelMessageSend(channelID, msg); err != nil {
			b.logger.Warn("send stream reminder", "user", userID, "error", err)
		}
	})
}
