package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	if m.GuildID == "" {
		b.handleDirectMessage(context.Background(), s, m)
		return
	}

	b.maybeScheduleStreamReminder(s, m)
}

// handleDirectMessage treats a DM as an offer claim when the sender has a
// pending batch. Anything else is ignored.
func (b *Bot) handleDirectMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	userID := m.Author.ID
	if !b.svc.Offers.HasPending(userID) {
		return
	}

	ctx, span := startEventSpan(ctx, "discord.DM.claim",
		attribute.String("discord.user_id", userID),
	)
	defer span.End()

	choice, err := strconv.Atoi(strings.TrimSpace(m.Content))
	if err != nil {
		b.replyDM(s, m.ChannelID, "Reply with just the number of the team you want to accept.")
		return
	}

	chosen, err := b.svc.Offers.Claim(ctx, userID, m.Author.Username, choice)
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		b.replyDM(s, m.ChannelID, "That number isn't one of your offers. Try again.")
		return
	case errors.Is(err, usecase.ErrNotFound):
		return
	case errors.Is(err, team.ErrTaken):
		// Lost the race for this team; the rest of the batch is still open.
		b.replyDM(s, m.ChannelID, fmt.Sprintf("%s was just taken by another coach. Pick a different number.", chosen.Name))
		return
	case err != nil:
		b.logger.Error("claim team", "user", userID, "error", err)
		b.replyDM(s, m.ChannelID, "Something went wrong accepting that offer. Try again.")
		return
	}

	b.replyDM(s, m.ChannelID, fmt.Sprintf("Congratulations! You are now the head coach of **%s**! 🎉", chosen.Name))

	if signed, err := b.findTextChannel(s, b.cfg.SignedCoachesChannel); err != nil {
		b.logger.Error("resolve signed coaches channel", "error", err)
	} else if _, err := s.ChannelMessageSend(signed.ID, fmt.Sprintf("<@%s> has signed with **%s**! 🏈", userID, chosen.Name)); err != nil {
		b.logger.Error("post signing announcement", "error", err)
	}

	b.provisionTeam(s, chosen)

	if err := b.postTeamBoard(ctx, s); err != nil {
		b.logger.Error("refresh team board", "error", err)
	}
}

func (b *Bot) replyDM(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		b.logger.Warn("send dm reply", "channel", channelID, "error", err)
	}
}
