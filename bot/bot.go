package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"roulette/bot/common"
	"roulette/bot/features/balance"
	"roulette/bot/features/history"
	"roulette/bot/features/roulette"
	"roulette/events"
	"roulette/service"
)

// Config holds bot configuration
type Config struct {
	Token        string
	GuildID      string // Empty registers commands globally
	SpinDuration time.Duration
}

type Bot struct {
	config  Config
	session *discordgo.Session

	rouletteFeature *roulette.Feature
	balanceFeature  *balance.Feature
	historyFeature  *history.Feature
}

func New(config Config, rouletteService service.RouletteService, ledgerService service.LedgerService, historyService service.HistoryService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:          config,
		session:         dg,
		rouletteFeature: roulette.New(rouletteService, config.SpinDuration),
		balanceFeature:  balance.New(ledgerService),
		historyFeature:  history.New(historyService),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleComponents)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	eventBus.Subscribe(events.EventTypePhaseChanged, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.PhaseChangedEvent); ok {
			log.WithFields(log.Fields{
				"player_id":   e.PlayerID,
				"from":        e.From,
				"to":          e.To,
				"total_games": e.TotalGames,
			}).Info("Player changed phase")
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	b.rouletteFeature.Close()
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "spin", "odds", "reset-state":
		b.rouletteFeature.HandleCommand(s, i)
	case "balance", "deposit", "withdraw":
		b.balanceFeature.HandleCommand(s, i)
	case "history", "stats", "clear-history":
		b.historyFeature.HandleCommand(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command")
	}
}

func (b *Bot) handleComponents(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	if roulette.OwnsComponent(i.MessageComponentData().CustomID) {
		b.rouletteFeature.HandleInteraction(s, i)
	}
}
