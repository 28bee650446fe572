package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/valyala/bytebufferpool"
)

func (b *Bot) handleRebuildRecords(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	res, err := b.svc.Rebuild.RebuildRecords(ctx, b.cfg.RebuildMaxWorkers)
	if err != nil {
		b.editReplyErr(s, i, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(fmt.Sprintf("Rebuilt %d season(s) with %d worker(s): %d ok, %d failed.",
		res.SeasonCount, res.WorkerCount, res.SuccessCount, res.FailedCount))

	for _, season := range res.Seasons {
		if season.Err != "" {
			_, _ = buf.WriteString(fmt.Sprintf("\n⚠️ Season %d: %s", season.Season, season.Err))
			continue
		}
		_, _ = buf.WriteString(fmt.Sprintf("\nSeason %d: %d record(s) in %dms", season.Season, season.Records, season.DurationMs))
	}

	b.editReply(s, i, buf.String())
}
