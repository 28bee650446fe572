package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

func (b *Bot) handleJobOffers(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	userID := interactionUserID(i)
	offers, err := b.svc.Offers.Offer(ctx, userID, b.cfg.SlashOfferCount)
	switch {
	case errors.Is(err, usecase.ErrConflict):
		b.editReply(s, i, "You already have a job or pending offers. Check your DMs, or ask an admin to reset you.")
		return
	case errors.Is(err, usecase.ErrNotFound):
		b.editReply(s, i, "No open teams right now. Check back after the next reset.")
		return
	case err != nil:
		b.editReplyErr(s, i, err)
		return
	}

	if err := b.sendOfferDM(s, userID, formatOfferDM(offers)); err != nil {
		b.svc.Offers.CancelOffers(userID)
		b.logger.Warn("send offer dm", "user", userID, "error", err)
		b.editReply(s, i, "I couldn't DM you. Enable DMs from server members and try again.")
		return
	}

	b.editReply(s, i, "Check your DMs for your job offers! 📬")
}

// onReaction is the second offer trigger: reacting with the configured emoji
// on the configured message requests a larger batch than the slash command.
func (b *Bot) onReaction(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if b.cfg.OfferReactionMessageID == "" || r.MessageID != b.cfg.OfferReactionMessageID {
		return
	}
	if r.Emoji.Name != b.cfg.OfferReactionEmoji {
		return
	}
	if s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}

	ctx, span := startEventSpan(context.Background(), "discord.Reaction.joboffers",
		attribute.String("discord.user_id", r.UserID),
	)
	defer span.End()

	offers, err := b.svc.Offers.Offer(ctx, r.UserID, b.cfg.ReactionOfferCount)
	if err != nil {
		if errors.Is(err, usecase.ErrConflict) || errors.Is(err, usecase.ErrNotFound) {
			b.logger.Info("reaction offer skipped", "user", r.UserID, "reason", err)
		} else {
			b.logger.Error("reaction offer", "user", r.UserID, "error", err)
		}
		return
	}

	if err := b.sendOfferDM(s, r.UserID, formatOfferDM(offers)); err != nil {
		b.svc.Offers.CancelOffers(r.UserID)
		b.logger.Warn("send offer dm", "user", r.UserID, "error", err)
	}
}

func (b *Bot) sendOfferDM(s *discordgo.Session, userID, content string) error {
	dm, err := s.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = s.ChannelMessageSend(dm.ID, content)
	return err
}
