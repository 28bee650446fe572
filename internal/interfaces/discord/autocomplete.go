package discord

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	autocompleteMinChars = 2
	autocompleteLimit    = 25
)

func (b *Bot) dispatchAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	data := i.ApplicationCommandData()

	var focused *discordgo.ApplicationCommandInteractionDataOption
	for _, opt := range data.Options {
		if opt.Focused {
			focused = opt
			break
		}
	}
	if focused == nil {
		return
	}

	query := strings.TrimSpace(focused.StringValue())
	if len(query) < autocompleteMinChars {
		b.respondChoices(s, i, nil)
		return
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	var err error

	switch {
	case focused.Name == "coach":
		choices, err = b.coachChoices(ctx, query)
	case data.Name == cmdResetTeam || data.Name == cmdMoveCoach:
		// These commands act on a team id, so the choice value is the id.
		choices, err = b.teamIDChoices(ctx, query)
	default:
		choices, err = b.teamNameChoices(ctx, query)
	}
	if err != nil {
		b.logger.Error("autocomplete search", "command", data.Name, "option", focused.Name, "error", err)
		b.respondChoices(s, i, nil)
		return
	}

	b.respondChoices(s, i, choices)
}

func (b *Bot) teamNameChoices(ctx context.Context, query string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	teams, err := b.svc.Roster.SearchTeams(ctx, query, autocompleteLimit)
	if err != nil {
		return nil, err
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(teams))
	for _, t := range teams {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  t.Name,
			Value: t.Name,
		})
	}
	return choices, nil
}

func (b *Bot) teamIDChoices(ctx context.Context, query string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	teams, err := b.svc.Roster.SearchTeams(ctx, query, autocompleteLimit)
	if err != nil {
		return nil, err
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(teams))
	for _, t := range teams {
		status := " (available)"
		if t.Taken() {
			status = " (" + t.TakenByName + ")"
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  t.Name + status,
			Value: strconv.FormatInt(t.ID, 10),
		})
	}
	return choices, nil
}

func (b *Bot) coachChoices(ctx context.Context, query string) ([]*discordgo.ApplicationCommandOptionChoice, error) {
	coaches, err := b.svc.Roster.SearchCoaches(ctx, query, autocompleteLimit)
	if err != nil {
		return nil, err
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(coaches))
	for _, name := range coaches {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}
	return choices, nil
}

func (b *Bot) respondChoices(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	if len(choices) > autocompleteLimit {
		choices = choices[:autocompleteLimit]
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		b.logger.Warn("respond autocomplete", "error", err)
	}
}
