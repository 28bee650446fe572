package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	cmdJobOffers      = "joboffers"
	cmdResetTeam      = "resetteam"
	cmdListTeams      = "listteams"
	cmdGameResult     = "game-result"
	cmdAnyGameResult  = "any-game-result"
	cmdPressRelease   = "press-release"
	cmdAdvance        = "advance"
	cmdSeasonAdvance  = "season-advance"
	cmdRanking        = "ranking"
	cmdRankingAllTime = "ranking-all-time"
	cmdMoveCoach      = "move-coach"
	cmdRebuildRecords = "rebuild-records"
)

var adminPermission int64 = discordgo.PermissionManageServer

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdJobOffers,
			Description: "Get a batch of job offers from open programs",
		},
		{
			Name:                     cmdResetTeam,
			Description:              "Clear a team's coach and offer state",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "team",
					Description:  "Team to reset",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:        cmdListTeams,
			Description: "Post the team board to the team list channel",
		},
		{
			Name:        cmdGameResult,
			Description: "Submit your game result for the current week",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "opponent",
					Description:  "Who you played",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "your-score",
					Description: "Points you scored",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "their-score",
					Description: "Points they scored",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "summary",
					Description: "Optional game summary",
				},
			},
		},
		{
			Name:                     cmdAnyGameResult,
			Description:              "Record a result between any two teams",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "team",
					Description:  "Team the score belongs to",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "opponent",
					Description:  "Opposing team",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "team-score",
					Description: "Points for the first team",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "opponent-score",
					Description: "Points for the opponent",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "week",
					Description: "Week the game was played",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "summary",
					Description: "Optional game summary",
				},
			},
		},
		{
			Name:        cmdPressRelease,
			Description: "Publish a press release to the news feed",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "Press release text",
					Required:    true,
				},
			},
		},
		{
			Name:                     cmdAdvance,
			Description:              "Advance the league one week",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "hours",
					Description: "Hours until the next advance",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "24 hours", Value: 24},
						{Name: "48 hours", Value: 48},
					},
				},
			},
		},
		{
			Name:                     cmdSeasonAdvance,
			Description:              "Start the next season at week 0",
			DefaultMemberPermissions: &adminPermission,
		},
		{
			Name:        cmdRanking,
			Description: "Post the current season ranking",
		},
		{
			Name:        cmdRankingAllTime,
			Description: "Show the all-time coach ranking",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "public",
					Description: "Post publicly instead of a private reply",
				},
			},
		},
		{
			Name:                     cmdMoveCoach,
			Description:              "Move a coach to another team",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "coach",
					Description:  "Coach to move",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "team",
					Description:  "Destination team",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:                     cmdRebuildRecords,
			Description:              "Recompute season records from the game log",
			DefaultMemberPermissions: &adminPermission,
		},
	}
}

// registerCommands clears any stale global commands and installs the guild
// set, so changes show up without the global propagation delay.
func (b *Bot) registerCommands() error {
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.cfg.DiscordClientID, "", nil); err != nil {
		return fmt.Errorf("clear global commands: %w", err)
	}

	if _, err := b.session.ApplicationCommandBulkOverwrite(b.cfg.DiscordClientID, b.cfg.DiscordGuildID, commandDefinitions()); err != nil {
		return fmt.Errorf("overwrite guild commands: %w", err)
	}

	return nil
}
