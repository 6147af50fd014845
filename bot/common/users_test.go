package common

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "123456789012345678", Username: "alice"}},
	}}
	id, err := InteractionUserID(guild)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789012345678), id)
	assert.Equal(t, "alice", InteractionUsername(guild))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "42", Username: "bob"},
	}}
	id, err = InteractionUserID(dm)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "bob", InteractionUsername(dm))

	_, err = InteractionUserID(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}})
	assert.Error(t, err)
}

func TestIntegerOption(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "amount", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(250)},
	}

	amount, ok := IntegerOption(options, "amount")
	assert.True(t, ok)
	assert.Equal(t, int64(250), amount)

	_, ok = IntegerOption(options, "limit")
	assert.False(t, ok)
}
