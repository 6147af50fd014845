package common

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// InteractionUser returns the invoking user for guild and DM interactions alike
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the invoking user's ID as the player ID
func InteractionUserID(i *discordgo.InteractionCreate) (int64, error) {
	user := InteractionUser(i)
	if user == nil {
		return 0, fmt.Errorf("interaction has no user")
	}
	return ParseUserID(user.ID)
}

// InteractionUsername returns the invoking user's username, or "" when unknown
func InteractionUsername(i *discordgo.InteractionCreate) string {
	if user := InteractionUser(i); user != nil {
		return user.Username
	}
	return ""
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// IntegerOption returns the named integer option of a slash command
func IntegerOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, bool) {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return opt.IntValue(), true
		}
	}
	return 0, false
}
