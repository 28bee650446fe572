package discord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/DFR0S7/CMR-Bot/internal/config"
	"github.com/DFR0S7/CMR-Bot/internal/platform/logging"
	"github.com/DFR0S7/CMR-Bot/internal/usecase"
)

// Services bundles the usecase layer the bot dispatches into.
type Services struct {
	Offers    *usecase.OfferService
	Results   *usecase.ResultService
	Standings *usecase.StandingsService
	Clock     *usecase.ClockService
	News      *usecase.NewsService
	Roster    *usecase.RosterService
	Rebuild   *usecase.RebuildService
}

// Bot owns the gateway session and routes events into the usecase layer.
type Bot struct {
	session *discordgo.Session
	cfg     config.Config
	logger  *logging.Logger
	svc     Services

	// loc is the league's home timezone, used for advance deadlines.
	loc *time.Location

	// pendingReminders tracks one scheduled stream reminder per user.
	pendingReminders sync.Map
}

func New(cfg config.Config, svc Services, logger *logging.Logger) (*Bot, error) {
	if logger == nil {
		logger = logging.Default()
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		loc = time.UTC
	}

	bot := &Bot{
		session: session,
		cfg:     cfg,
		logger:  logger,
		svc:     svc,
		loc:     loc,
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteraction)
	session.AddHandler(bot.onMessage)
	session.AddHandler(bot.onReaction)

	return bot, nil
}

// Run opens the gateway, installs the guild commands and blocks until the
// context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.logger.Warn("close discord session", "error", err)
		}
	}()

	if err := b.registerCommands(); err != nil {
		return errors.Wrap(err, "register commands")
	}

	b.logger.Info("bot running",
		"guild", b.cfg.DiscordGuildID,
		"commands", len(commandDefinitions()),
	)

	<-ctx.Done()
	b.logger.Info("bot shutting down")
	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("gateway ready", "user", r.User.Username, "session", r.SessionID)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.dispatchAutocomplete(s, i)
	}
}

func (b *Bot) dispatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	ctx, span := startEventSpan(context.Background(), "discord.Command."+data.Name,
		attribute.String("discord.command", data.Name),
		attribute.String("discord.user_id", interactionUserID(i)),
	)
	defer span.End()

	b.logger.Info("command received", "command", data.Name, "user", interactionUserID(i))

	switch data.Name {
	case cmdJobOffers:
		b.handleJobOffers(ctx, s, i)
	case cmdResetTeam:
		b.handleResetTeam(ctx, s, i)
	case cmdListTeams:
		b.handleListTeams(ctx, s, i)
	case cmdGameResult:
		b.handleGameResult(ctx, s, i)
	case cmdAnyGameResult:
		b.handleAnyGameResult(ctx, s, i)
	case cmdPressRelease:
		b.handlePressRelease(ctx, s, i)
	case cmdAdvance:
		b.handleAdvance(ctx, s, i)
	case cmdSeasonAdvance:
		b.handleSeasonAdvance(ctx, s, i)
	case cmdRanking:
		b.handleRanking(ctx, s, i)
	case cmdRankingAllTime:
		b.handleRankingAllTime(ctx, s, i)
	case cmdMoveCoach:
		b.handleMoveCoach(ctx, s, i)
	case cmdRebuildRecords:
		b.handleRebuildRecords(ctx, s, i)
	default:
		b.logger.Warn("unknown command", "command", data.Name)
	}
}

// interactionUserID works for both guild interactions (Member set) and DM
// interactions (User set).
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func interactionUserName(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}
