package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// deferReply acknowledges the interaction inside Discord's response deadline;
// the real content follows via editReply once the slow work is done.
func (b *Bot) deferReply(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) bool {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.logger.Error("defer interaction", "command", i.ApplicationCommandData().Name, "error", err)
		return false
	}
	return true
}

func (b *Bot) editReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		b.logger.Error("edit interaction reply", "command", i.ApplicationCommandData().Name, "error", err)
	}
}

func (b *Bot) editReplyEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, content string, embeds []*discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &embeds,
	}); err != nil {
		b.logger.Error("edit interaction reply", "command", i.ApplicationCommandData().Name, "error", err)
	}
}

// editReplyErr surfaces the failure verbatim to the invoking user. No
// retries; the user decides whether to run the command again.
func (b *Bot) editReplyErr(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	b.logger.Error("command failed", "command", i.ApplicationCommandData().Name, "error", err)
	b.editReply(s, i, "Something went wrong: "+err.Error())
}

// sentinelDetail strips the sentinel prefix from a wrapped usecase error,
// leaving just the human-readable detail.
func sentinelDetail(err error) string {
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, ": "); ok {
		return detail
	}
	return msg
}

// commandOptions flattens interaction options into a name lookup.
func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	data := i.ApplicationCommandData()
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		out[opt.Name] = opt
	}
	return out
}

func optionString(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func optionInt(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return 0
}

func optionBool(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if opt, ok := opts[name]; ok {
		return opt.BoolValue()
	}
	return false
}
