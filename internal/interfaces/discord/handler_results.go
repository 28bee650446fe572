package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/DFR0S7/CMR-Bot/internal/domain/result"
	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

func (b *Bot) handleGameResult(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	opts := commandOptions(i)
	res, err := b.svc.Results.SubmitGameResult(ctx, usecase.GameResultInput{
		UserID:        interactionUserID(i),
		UserName:      interactionUserName(i),
		Opponent:      optionString(opts, "opponent"),
		UserScore:     optionInt(opts, "your-score"),
		OpponentScore: optionInt(opts, "their-score"),
		Summary:       optionString(opts, "summary"),
	})
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		b.editReply(s, i, "Couldn't record that: "+sentinelDetail(err))
		return
	case errors.Is(err, usecase.ErrConflict):
		b.editReply(s, i, "You already submitted a result this week.")
		return
	case errors.Is(err, usecase.ErrInvalidInput):
		b.editReply(s, i, "Couldn't record that: "+sentinelDetail(err))
		return
	case err != nil:
		b.editReplyErr(s, i, err)
		return
	}

	b.postBoxScore(ctx, s, i, res)
}

func (b *Bot) handleAnyGameResult(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	opts := commandOptions(i)
	res, err := b.svc.Results.SubmitAnyGameResult(ctx, usecase.AnyGameResultInput{
		TeamName:      optionString(opts, "team"),
		OpponentName:  optionString(opts, "opponent"),
		TeamScore:     optionInt(opts, "team-score"),
		OpponentScore: optionInt(opts, "opponent-score"),
		Week:          optionInt(opts, "week"),
		Summary:       optionString(opts, "summary"),
	})
	switch {
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, usecase.ErrInvalidInput):
		b.editReply(s, i, "Couldn't record that: "+sentinelDetail(err))
		return
	case err != nil:
		b.editReplyErr(s, i, err)
		return
	}

	b.postBoxScore(ctx, s, i, res)
}

// postBoxScore publishes the result embed to the news feed and confirms to
// the submitter. The result row is already committed; posting failures only
// degrade the announcement.
func (b *Bot) postBoxScore(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, res result.GameResult) {
	userRec, oppRec, opponentHuman, err := b.svc.Results.BoxScoreRecords(ctx, res)
	if err != nil {
		b.editReplyErr(s, i, err)
		return
	}

	embed := formatBoxScore(res, opponentHuman,
		[2]int{userRec.Wins, userRec.Losses},
		[2]int{oppRec.Wins, oppRec.Losses})

	feed, err := b.findTextChannel(s, b.cfg.NewsFeedChannel)
	if err != nil {
		b.logger.Error("resolve news feed channel", "error", err)
		b.editReply(s, i, fmt.Sprintf("Result recorded, but I couldn't find #%s to post it.", b.cfg.NewsFeedChannel))
		return
	}
	if _, err := s.ChannelMessageSendEmbed(feed.ID, embed); err != nil {
		b.logger.Error("post box score", "error", err)
		b.editReply(s, i, fmt.Sprintf("Result recorded, but posting to #%s failed.", b.cfg.NewsFeedChannel))
		return
	}

	b.editReply(s, i, fmt.Sprintf("Result recorded and posted to #%s: %s vs %s",
		b.cfg.NewsFeedChannel, res.UserTeamName, res.OpponentTeamName))
}
