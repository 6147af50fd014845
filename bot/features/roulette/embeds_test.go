package roulette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette/bot/common"
	"roulette/models"
)

func TestBuildResultEmbed_Win(t *testing.T) {
	result := &models.RoundResult{
		Outcome:       models.OutcomeWin,
		Odds:          models.Odds{Win: 0.60, Lose: 0.40},
		Bet:           100,
		Prize:         200,
		Profit:        100,
		BalanceBefore: 1000,
		BalanceAfter:  1100,
		State:         models.GameState{TotalGames: 1, CurrentPhase: models.PhaseInitial},
		PreviousPhase: models.PhaseInitial,
		Wheel:         models.WheelStop{SliceIndex: 2},
	}

	embed := buildResultEmbed(42, result)

	assert.Equal(t, "🎉 WIN", embed.Title)
	assert.Equal(t, common.ColorSuccess, embed.Color)
	assert.Contains(t, embed.Description, "<@42>")
	assert.Contains(t, embed.Description, "200")
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "60%", embed.Fields[1].Value)
	assert.Equal(t, "+100", embed.Fields[2].Value)
	assert.Equal(t, "Landed on slice 3 of 8 • round 1", embed.Footer.Text)
}

func TestBuildResultEmbed_LoseWithPhaseChange(t *testing.T) {
	result := &models.RoundResult{
		Outcome:       models.OutcomeLose,
		Odds:          models.Odds{Win: 0.60, Lose: 0.40},
		Bet:           100,
		Profit:        -100,
		BalanceBefore: 1000,
		BalanceAfter:  900,
		State:         models.GameState{TotalGames: 4, ConsecutiveLosses: 1, CurrentPhase: models.PhaseHouse},
		PreviousPhase: models.PhaseInitial,
	}

	embed := buildResultEmbed(42, result)

	assert.Equal(t, "💀 LOSE", embed.Title)
	assert.Equal(t, common.ColorDanger, embed.Color)
	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "-100", embed.Fields[2].Value)
	assert.Equal(t, "Initial → House", embed.Fields[4].Value)
}

func TestBuildOddsEmbed(t *testing.T) {
	view := &models.OddsView{
		Odds:              models.Odds{Win: 0.25, Lose: 0.75},
		Phase:             models.PhaseHouse,
		TotalGames:        7,
		ConsecutiveLosses: 3,
		Threshold:         4,
		ResetThreshold:    15,
	}

	embed := buildOddsEmbed(view)

	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "House", embed.Fields[0].Value)
	assert.Equal(t, "25%", embed.Fields[1].Value)
	assert.Equal(t, "75%", embed.Fields[2].Value)
	assert.Equal(t, "7 / 4", embed.Fields[3].Value)
	assert.Equal(t, "3 / 15", embed.Fields[4].Value)
}
