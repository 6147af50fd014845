package common

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"roulette/service"
)

// UserMessage maps a service error to the text shown to the player
func UserMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return "Amount must be a positive number of bits within the limits."
	case errors.Is(err, service.ErrInsufficientBalance):
		return "Insufficient balance. Use /deposit to add bits."
	case errors.Is(err, service.ErrRoundInProgress):
		return "Your wheel is already spinning."
	default:
		return "Something went wrong. Please try again later."
	}
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// HandleError logs err and answers the interaction with a player-facing message
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, logMessage string) {
	userID, _ := InteractionUserID(i)
	log.WithFields(log.Fields{
		"user_id": userID,
		"error":   err,
	}).Error(logMessage)

	RespondWithError(s, i, UserMessage(err))
}
