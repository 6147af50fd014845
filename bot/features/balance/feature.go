package balance

import (
	"github.com/bwmarrin/discordgo"

	"roulette/bot/common"
	"roulette/service"
)

// Feature handles /balance, /deposit and /withdraw
type Feature struct {
	ledgerService service.LedgerService
}

func New(ledgerService service.LedgerService) *Feature {
	return &Feature{
		ledgerService: ledgerService,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "balance":
		f.handleBalance(s, i)
	case "deposit":
		f.handleDeposit(s, i)
	case "withdraw":
		f.handleWithdraw(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command")
	}
}
