package roulette

import (
	"bytes"
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"roulette/bot/common"
)

func (f *Feature) handleSpinCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	bet, ok := common.IntegerOption(i.ApplicationCommandData().Options, "amount")
	if !ok {
		common.RespondWithError(s, i, "Please provide an amount to bet.")
		return
	}
	f.spin(s, i, bet, false)
}

func (f *Feature) handleSpinButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_, bet, ok := parseSpinButton(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	// Only the player who spun may reuse the buttons
	if i.Message != nil && i.Message.Interaction != nil && i.Message.Interaction.User != nil {
		if user := common.InteractionUser(i); user == nil || user.ID != i.Message.Interaction.User.ID {
			common.RespondWithError(s, i, "These buttons belong to someone else. Use /spin to play.")
			return
		}
	}

	f.spin(s, i, bet, true)
}

// spin settles one round, shows the spinning embed for the animation length
// and then reveals the result in place.
func (f *Feature) spin(s *discordgo.Session, i *discordgo.InteractionCreate, bet int64, fromButton bool) {
	ctx := context.Background()

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error resolving player for spin: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	stop, ok := f.spins.start(playerID)
	if !ok {
		common.RespondWithError(s, i, "Your wheel is already spinning.")
		return
	}
	defer stop()

	result, err := f.rouletteService.PlayRound(ctx, playerID, common.InteractionUsername(i), bet)
	if err != nil {
		common.HandleError(s, i, err, "Error playing round")
		return
	}

	spinning := buildSpinningEmbed(playerID, bet)
	if fromButton {
		err = common.RespondWithUpdate(s, i, spinning, []discordgo.MessageComponent{})
	} else {
		err = common.RespondWithEmbed(s, i, spinning, nil, false)
	}
	if err != nil {
		log.Errorf("Error sending spinning message: %v", err)
	}

	waitForSpin(f.ctx, f.spinDuration)

	embed := buildResultEmbed(playerID, result)
	components := buildSpinButtons(bet, result.BalanceAfter)

	var files []*discordgo.File
	if image, err := renderWheel(result.Wheel); err != nil {
		log.WithError(err).Warn("Failed to render wheel image")
	} else {
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + wheelImageName}
		files = append(files, &discordgo.File{
			Name:        wheelImageName,
			ContentType: "image/png",
			Reader:      bytes.NewReader(image),
		})
	}

	if err := common.UpdateMessage(s, i, embed, components, files...); err != nil {
		log.Errorf("Error updating spin result: %v", err)
	}

	log.WithFields(log.Fields{
		"player_id": playerID,
		"round_id":  result.RoundID,
		"bet":       bet,
		"outcome":   result.Outcome,
		"win_odds":  result.Odds.Win,
		"balance":   result.BalanceAfter,
	}).Info("Round played")
}

func (f *Feature) handleOdds(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error resolving player for odds: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	view, err := f.rouletteService.CurrentOdds(ctx, playerID)
	if err != nil {
		common.HandleError(s, i, err, "Error getting current odds")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildOddsEmbed(view), nil, true); err != nil {
		log.Errorf("Error responding to odds command: %v", err)
	}
}

func (f *Feature) handleResetState(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	playerID, err := common.InteractionUserID(i)
	if err != nil {
		log.Errorf("Error resolving player for reset: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if f.spins.isSpinning(playerID) {
		common.RespondWithError(s, i, "Wait for your wheel to stop first.")
		return
	}

	if _, err := f.rouletteService.ResetState(ctx, playerID); err != nil {
		common.HandleError(s, i, err, "Error resetting game state")
		return
	}

	if err := common.RespondWithSuccess(s, i, "Game progress reset. You are back on the initial odds.", true); err != nil {
		log.Errorf("Error responding to reset-state command: %v", err)
	}
}
