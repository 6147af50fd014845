package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var minAmount = 1.0

func amountOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "amount",
		Description: description,
		Required:    true,
		MinValue:    &minAmount,
	}
}

// commands lists every slash command the bot serves
func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "spin",
			Description: "Bet bits on a spin of the wheel",
			Options: []*discordgo.ApplicationCommandOption{
				amountOption("Amount to bet in bits"),
			},
		},
		{
			Name:        "odds",
			Description: "Show your odds for the next spin",
		},
		{
			Name:        "reset-state",
			Description: "Reset your game progress to the initial odds",
		},
		{
			Name:        "balance",
			Description: "Check your current balance",
		},
		{
			Name:        "deposit",
			Description: "Add bits to your balance",
			Options: []*discordgo.ApplicationCommandOption{
				amountOption("Amount to deposit in bits"),
			},
		},
		{
			Name:        "withdraw",
			Description: "Take bits out of your balance",
			Options: []*discordgo.ApplicationCommandOption{
				amountOption("Amount to withdraw in bits"),
			},
		},
		{
			Name:        "history",
			Description: "Show your recent bets",
		},
		{
			Name:        "stats",
			Description: "Show statistics over your bet history",
		},
		{
			Name:        "clear-history",
			Description: "Delete your bet history",
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range commands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
