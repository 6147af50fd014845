package balance

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"roulette/bot/common"
	"roulette/models"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	balance, err := f.ledgerService.Balance(ctx, playerID)
	if err != nil {
		common.HandleError(s, i, err, "Error getting balance")
		return
	}

	message := fmt.Sprintf("<@%d>, your current balance: **%s bits**", playerID, common.FormatBalance(balance))
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handleDeposit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLedgerCommand(s, i, "deposit", f.ledgerService.Deposit)
}

func (f *Feature) handleWithdraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLedgerCommand(s, i, "withdraw", f.ledgerService.Withdraw)
}

type ledgerOperation func(ctx context.Context, playerID int64, username string, amount int64) (*models.LedgerResult, error)

func (f *Feature) handleLedgerCommand(s *discordgo.Session, i *discordgo.InteractionCreate, name string, op ledgerOperation) {
	ctx := context.Background()

	amount, ok := common.IntegerOption(i.ApplicationCommandData().Options, "amount")
	if !ok {
		common.RespondWithError(s, i, "Please provide an amount.")
		return
	}

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	result, err := op(ctx, playerID, common.InteractionUsername(i), amount)
	if err != nil {
		common.HandleError(s, i, err, fmt.Sprintf("Error processing %s", name))
		return
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"operation": name,
		"amount":    result.Amount,
		"balance":   result.NewBalance,
	}).Info("Ledger updated")

	if err := common.RespondWithSuccess(s, i, formatLedgerResult(name, result), true); err != nil {
		log.Errorf("Error responding to %s command: %v", name, err)
	}
}

func formatLedgerResult(name string, result *models.LedgerResult) string {
	verb := "Deposited"
	if name == "withdraw" {
		verb = "Withdrew"
	}
	return fmt.Sprintf("%s **%s bits**. New balance: **%s bits**",
		verb, common.FormatBalance(result.Amount), common.FormatBalance(result.NewBalance))
}
