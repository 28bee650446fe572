package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleRanking(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	lc, rows, err := b.svc.Standings.SeasonRanking(ctx)
	if err != nil {
		b.editReplyErr(s, i, err)
		return
	}
	if len(rows) == 0 {
		b.editReply(s, i, "No ranked coaches yet this season.")
		return
	}

	feed, err := b.findTextChannel(s, b.cfg.NewsFeedChannel)
	if err != nil {
		b.editReplyErr(s, i, err)
		return
	}
	if _, err := s.ChannelMessageSendEmbed(feed.ID, formatSeasonRanking(lc, rows)); err != nil {
		b.editReplyErr(s, i, fmt.Errorf("post ranking: %w", err))
		return
	}

	b.editReply(s, i, fmt.Sprintf("Rankings posted to #%s.", b.cfg.NewsFeedChannel))
}

func (b *Bot) handleRankingAllTime(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	public := optionBool(commandOptions(i), "public")
	if !b.deferReply(s, i, !public) {
		return
	}

	rows, err := b.svc.Standings.AllTimeRanking(ctx)
	if err != nil {
		b.editReplyErr(s, i, err)
		return
	}
	if len(rows) == 0 {
		b.editReply(s, i, "No all-time records yet.")
		return
	}

	b.editReplyEmbed(s, i, "", []*discordgo.MessageEmbed{formatAllTimeRanking(rows)})
}
