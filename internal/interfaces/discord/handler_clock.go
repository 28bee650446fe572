package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

func (b *Bot) handleAdvance(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	hours := optionInt(commandOptions(i), "hours")
	adv, err := b.svc.Clock.AdvanceWeek(ctx, hours)
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		b.editReply(s, i, "Couldn't advance: "+sentinelDetail(err))
		return
	case err != nil:
		b.editReplyErr(s, i, err)
		return
	}

	if feed, err := b.findTextChannel(s, b.cfg.NewsFeedChannel); err != nil {
		b.logger.Error("resolve news feed channel", "error", err)
	} else if _, err := s.ChannelMessageSendEmbed(feed.ID, formatWeekSummary(adv)); err != nil {
		b.logger.Error("post week summary", "error", err)
	}

	b.postAdvanceNotice(s, adv)

	b.editReply(s, i, fmt.Sprintf("Advanced to Season %d, Week %d.", adv.Next.Season, adv.Next.Week))
}

// postAdvanceNotice pings the head coach role in the advance tracker with the
// deadline for the new week.
func (b *Bot) postAdvanceNotice(s *discordgo.Session, adv usecase.WeekAdvance) {
	tracker, err := b.findTextChannel(s, b.cfg.AdvanceTrackerChannel)
	if err != nil {
		b.logger.Error("resolve advance tracker channel", "error", err)
		return
	}

	role, err := b.findOrCreateRole(s)
	if err != nil {
		b.logger.Error("resolve head coach role", "error", err)
		return
	}

	if _, err := s.ChannelMessageSend(tracker.ID, formatAdvanceNotice(adv, role.ID, b.loc)); err != nil {
		b.logger.Error("post advance notice", "error", err)
	}
}

func (b *Bot) handleSeasonAdvance(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	lc, err := b.svc.Clock.AdvanceSeason(ctx)
	if err != nil {
		b.editReplyErr(s, i, err)
		return
	}

	if feed, err := b.findTextChannel(s, b.cfg.NewsFeedChannel); err == nil {
		msg := fmt.Sprintf("🏈 **Season %d has begun!** Good luck, coaches.", lc.Season)
		if _, err := s.ChannelMessageSend(feed.ID, msg); err != nil {
			b.logger.Error("post season notice", "error", err)
		}
	}

	b.editReply(s, i, fmt.Sprintf("Started Season %d at Week %d.", lc.Season, lc.Week))
}
