package history

import (
	"github.com/bwmarrin/discordgo"

	"roulette/bot/common"
	"roulette/service"
)

// Feature handles /history, /stats and /clear-history
type Feature struct {
	historyService service.HistoryService
}

// New creates a new history feature instance
func New(historyService service.HistoryService) *Feature {
	return &Feature{
		historyService: historyService,
	}
}

// HandleCommand routes the feature's slash commands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "history":
		f.handleHistory(s, i)
	case "stats":
		f.handleStats(s, i)
	case "clear-history":
		f.handleClear(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command")
	}
}
