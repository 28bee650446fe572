package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

func (b *Bot) handlePressRelease(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	text := optionString(commandOptions(i), "text")
	item, err := b.svc.News.PublishPressRelease(ctx, text)
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		b.editReply(s, i, "Press release text can't be empty.")
		return
	case err != nil:
		b.editReplyErr(s, i, err)
		return
	}

	feed, err := b.findTextChannel(s, b.cfg.NewsFeedChannel)
	if err != nil {
		b.logger.Error("resolve news feed channel", "error", err)
		b.editReply(s, i, fmt.Sprintf("Press release saved, but I couldn't find #%s to post it.", b.cfg.NewsFeedChannel))
		return
	}
	if _, err := s.ChannelMessageSend(feed.ID, formatPressRelease(item)); err != nil {
		b.logger.Error("post press release", "error", err)
		b.editReply(s, i, fmt.Sprintf("Press release saved, but posting to #%s failed.", b.cfg.NewsFeedChannel))
		return
	}

	b.editReply(s, i, fmt.Sprintf("Press release posted to #%s.", b.cfg.NewsFeedChannel))
}
