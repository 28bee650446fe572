package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

func (b *Bot) handleListTeams(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	if err := b.postTeamBoard(ctx, s); err != nil {
		b.editReplyErr(s, i, err)
		return
	}

	b.editReply(s, i, fmt.Sprintf("Team board posted to #%s.", b.cfg.TeamListChannel))
}

// postTeamBoard replaces the bot's previous board in the team list channel
// with a fresh one.
func (b *Bot) postTeamBoard(ctx context.Context, s *discordgo.Session) error {
	teams, err := b.svc.Roster.TeamBoard(ctx)
	if err != nil {
		return err
	}

	ch, err := b.findTextChannel(s, b.cfg.TeamListChannel)
	if err != nil {
		return err
	}

	b.deleteOwnMessages(s, ch.ID)

	if _, err := s.ChannelMessageSendEmbed(ch.ID, formatTeamBoard(teams, b.cfg.OpenTierStars)); err != nil {
		return fmt.Errorf("post team board: %w", err)
	}
	return nil
}

// deleteOwnMessages purges the bot's recent messages from a channel so a
// reposted board doesn't stack up. Deletion failures are logged and skipped.
func (b *Bot) deleteOwnMessages(s *discordgo.Session, channelID string) {
	if s.State.User == nil {
		return
	}

	msgs, err := s.ChannelMessages(channelID, 100, "", "", "")
	if err != nil {
		b.logger.Warn("list channel messages", "channel", channelID, "error", err)
		return
	}
	for _, msg := range msgs {
		if msg.Author == nil || msg.Author.ID != s.State.User.ID {
			continue
		}
		if err := s.ChannelMessageDelete(channelID, msg.ID); err != nil {
			b.logger.Warn("delete old board message", "message", msg.ID, "error", err)
		}
	}
}

func (b *Bot) handleResetTeam(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	teamID, err := strconv.ParseInt(optionString(commandOptions(i), "team"), 10, 64)
	if err != nil {
		b.editReply(s, i, "Pick a team from the autocomplete suggestions.")
		return
	}

	reset, err := b.svc.Roster.ResetTeam(ctx, teamID)
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrNotFound):
		b.editReply(s, i, "Couldn't reset that team: "+sentinelDetail(err))
		return
	case err != nil:
		b.editReplyErr(s, i, err)
		return
	}

	b.teardownTeam(s, reset, reset.TakenBy, false)

	if err := b.postTeamBoard(ctx, s); err != nil {
		b.logger.Error("refresh team board", "error", err)
	}

	b.editReply(s, i, fmt.Sprintf("%s is open again. %s is no longer the coach.", reset.Name, reset.TakenByName))
}

func (b *Bot) handleMoveCoach(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.deferReply(s, i, true) {
		return
	}

	opts := commandOptions(i)
	coachName := optionString(opts, "coach")

	teamID, err := strconv.ParseInt(optionString(opts, "team"), 10, 64)
	if err != nil {
		b.editReply(s, i, "Pick a destination team from the autocomplete suggestions.")
		return
	}

	held, err := b.svc.Roster.TeamsOf(ctx, coachName)
	if err != nil {
		b.editReplyErr(s, i, err)
		return
	}
	if len(held) == 0 {
		b.editReply(s, i, fmt.Sprintf("No coach named %q holds a team.", coachName))
		return
	}

	from, to, err := b.svc.Roster.MoveCoach(ctx, held[0].TakenBy, held[0].TakenByName, teamID)
	switch {
	case errors.Is(err, usecase.ErrConflict), errors.Is(err, usecase.ErrNotFound):
		b.editReply(s, i, "Couldn't move the coach: "+sentinelDetail(err))
		return
	case err != nil:
		b.editReplyErr(s, i, err)
		return
	}

	if from.ID != 0 {
		b.renameTeamChannel(s, from, to)
	} else {
		b.provisionTeam(s, to)
	}

	if err := b.postTeamBoard(ctx, s); err != nil {
		b.logger.Error("refresh team board", "error", err)
	}

	b.editReply(s, i, fmt.Sprintf("%s now coaches %s.", to.TakenByName, to.Name))
}
