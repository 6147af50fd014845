package history

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"roulette/bot/common"
)

func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	records, err := f.historyService.Recent(ctx, playerID, common.MaxHistoryLines)
	if err != nil {
		common.HandleError(s, i, err, "Error getting bet history")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildHistoryEmbed(playerID, records), nil, true); err != nil {
		log.Errorf("Error responding to history command: %v", err)
	}
}

func (f *Feature) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	stats, err := f.historyService.Stats(ctx, playerID)
	if err != nil {
		common.HandleError(s, i, err, "Error getting bet stats")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildStatsEmbed(playerID, stats), nil, false); err != nil {
		log.Errorf("Error responding to stats command: %v", err)
	}
}

func (f *Feature) handleClear(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	deleted, err := f.historyService.Clear(ctx, playerID)
	if err != nil {
		common.HandleError(s, i, err, "Error clearing bet history")
		return
	}

	message := fmt.Sprintf("Cleared %d bets from your history.", deleted)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to clear-history command: %v", err)
	}
}
