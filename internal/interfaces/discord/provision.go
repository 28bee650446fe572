package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"

	"github.com/DFR0S7/CMR-Bot/internal/domain/team"
)

// channelName lowercases a team name into Discord channel form.
func channelName(teamName string) string {
	return strings.ReplaceAll(strings.ToLower(teamName), " ", "-")
}

// findTextChannel resolves a guild text channel by name.
func (b *Bot) findTextChannel(s *discordgo.Session, name string) (*discordgo.Channel, error) {
	channels, err := s.GuildChannels(b.cfg.DiscordGuildID)
	if err != nil {
		return nil, fmt.Errorf("list guild channels: %w", err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
			return ch, nil
		}
	}
	return nil, fmt.Errorf("channel %q not found", name)
}

// findOrCreateCategory resolves the team category, creating it when a server
// rebuild dropped it.
func (b *Bot) findOrCreateCategory(s *discordgo.Session) (*discordgo.Channel, error) {
	channels, err := s.GuildChannels(b.cfg.DiscordGuildID)
	if err != nil {
		return nil, fmt.Errorf("list guild channels: %w", err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == b.cfg.TeamCategory {
			return ch, nil
		}
	}

	created, err := s.GuildChannelCreateComplex(b.cfg.DiscordGuildID, discordgo.GuildChannelCreateData{
		Name: b.cfg.TeamCategory,
		Type: discordgo.ChannelTypeGuildCategory,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create category %q", b.cfg.TeamCategory)
	}
	return created, nil
}

// findOrCreateRole resolves the head coach role by name.
func (b *Bot) findOrCreateRole(s *discordgo.Session) (*discordgo.Role, error) {
	roles, err := s.GuildRoles(b.cfg.DiscordGuildID)
	if err != nil {
		return nil, fmt.Errorf("list guild roles: %w", err)
	}
	for _, r := range roles {
		if strings.EqualFold(r.Name, b.cfg.HeadCoachRole) {
			return r, nil
		}
	}

	created, err := s.GuildRoleCreate(b.cfg.DiscordGuildID, &discordgo.RoleParams{
		Name: b.cfg.HeadCoachRole,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create role %q", b.cfg.HeadCoachRole)
	}
	return created, nil
}

// provisionTeam sets up a newly signed coach: a team channel under the team
// category and the head coach role. Failures are logged and skipped; the
// claim itself already committed.
func (b *Bot) provisionTeam(s *discordgo.Session, t team.Team) {
	category, err := b.findOrCreateCategory(s)
	if err != nil {
		b.logger.Error("resolve team category", "team", t.Name, "error", err)
	} else {
		_, err := s.GuildChannelCreateComplex(b.cfg.DiscordGuildID, discordgo.GuildChannelCreateData{
			Name:     channelName(t.Name),
			Type:     discordgo.ChannelTypeGuildText,
			ParentID: category.ID,
		})
		if err != nil {
			b.logger.Error("create team channel", "team", t.Name, "error", err)
		}
	}

	role, err := b.findOrCreateRole(s)
	if err != nil {
		b.logger.Error("resolve head coach role", "team", t.Name, "error", err)
		return
	}
	if err := s.GuildMemberRoleAdd(b.cfg.DiscordGuildID, t.TakenBy, role.ID); err != nil {
		b.logger.Error("grant head coach role", "user", t.TakenBy, "error", err)
	}
}

// teardownTeam reverses provisionTeam after a reset: the team channel goes
// away and the departing coach loses the role unless they still hold another
// team.
func (b *Bot) teardownTeam(s *discordgo.Session, t team.Team, userID string, stillCoaching bool) {
	if ch, err := b.findTeamChannel(s, t.Name); err == nil && ch != nil {
		if _, err := s.ChannelDelete(ch.ID); err != nil {
			b.logger.Error("delete team channel", "team", t.Name, "error", err)
		}
	}

	if stillCoaching || userID == "" {
		return
	}
	role, err := b.findOrCreateRole(s)
	if err != nil {
		b.logger.Error("resolve head coach role", "team", t.Name, "error", err)
		return
	}
	if err := s.GuildMemberRoleRemove(b.cfg.DiscordGuildID, userID, role.ID); err != nil {
		b.logger.Error("remove head coach role", "user", userID, "error", err)
	}
}

// renameTeamChannel follows a coach move: the old team's channel becomes the
// new team's channel, keeping history.
func (b *Bot) renameTeamChannel(s *discordgo.Session, from, to team.Team) {
	ch, err := b.findTeamChannel(s, from.Name)
	if err != nil || ch == nil {
		b.provisionTeam(s, to)
		return
	}
	if _, err := s.ChannelEdit(ch.ID, &discordgo.ChannelEdit{Name: channelName(to.Name)}); err != nil {
		b.logger.Error("rename team channel", "from", from.Name, "to", to.Name, "error", err)
	}
}

// findTeamChannel locates the text channel provisioned for a team, nil when
// none exists.
func (b *Bot) findTeamChannel(s *discordgo.Session, teamName string) (*discordgo.Channel, error) {
	channels, err := s.GuildChannels(b.cfg.DiscordGuildID)
	if err != nil {
		return nil, fmt.Errorf("list guild channels: %w", err)
	}
	want := channelName(teamName)
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == want {
			return ch, nil
		}
	}
	return nil, nil
}

// isTeamChannel reports whether a message channel is one of the provisioned
// team channels, by parent category or by naming convention.
func (b *Bot) isTeamChannel(s *discordgo.Session, channelID string) bool {
	ch, err := s.Channel(channelID)
	if err != nil || ch == nil {
		return false
	}
	if ch.ParentID != "" {
		if parent, err := s.Channel(ch.ParentID); err == nil && parent != nil && parent.Name == b.cfg.TeamCategory {
			return true
		}
	}
	return strings.Contains(ch.Name, "team-") || strings.Contains(ch.Name, "-team")
}
