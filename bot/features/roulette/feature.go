package roulette

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"roulette/bot/common"
	"roulette/service"
)

// Feature handles /spin, /odds and /reset-state plus the spin-again buttons
type Feature struct {
	rouletteService service.RouletteService
	spinDuration    time.Duration
	spins           *spinTracker

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new roulette feature instance
func New(rouletteService service.RouletteService, spinDuration time.Duration) *Feature {
	ctx, cancel := context.WithCancel(context.Background())
	return &Feature{
		rouletteService: rouletteService,
		spinDuration:    spinDuration,
		spins:           newSpinTracker(),
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Close cuts short any spin animation still waiting. Results that were
// already settled are still shown.
func (f *Feature) Close() {
	f.cancel()
}

// HandleCommand routes the feature's slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "spin":
		f.handleSpinCommand(s, i)
	case "odds":
		f.handleOdds(s, i)
	case "reset-state":
		f.handleResetState(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command")
	}
}

// HandleInteraction handles spin-again button clicks
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	f.handleSpinButton(s, i)
}

// OwnsComponent reports whether a component custom ID belongs to this feature
func OwnsComponent(customID string) bool {
	_, _, ok := parseSpinButton(customID)
	return ok
}
