package roulette

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"roulette/bot/common"
	"roulette/engine"
	"roulette/models"
)

func phaseLabel(p models.Phase) string {
	switch p {
	case models.PhaseInitial:
		return "Initial"
	case models.PhaseHouse:
		return "House"
	default:
		return string(p)
	}
}

// buildSpinningEmbed is shown while the wheel animation runs
func buildSpinningEmbed(userID int64, bet int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎡 Spinning...",
		Description: fmt.Sprintf("<@%d> bet **%s bits**", userID, common.FormatBalance(bet)),
		Color:       common.ColorWarning,
	}
}

// buildResultEmbed renders a settled round
func buildResultEmbed(userID int64, result *models.RoundResult) *discordgo.MessageEmbed {
	var title, description string
	var color int
	if result.Outcome == models.OutcomeWin {
		title = "🎉 WIN"
		description = fmt.Sprintf("<@%d> won **%s bits**!", userID, common.FormatBalance(result.Prize))
		color = common.ColorSuccess
	} else {
		title = "💀 LOSE"
		description = fmt.Sprintf("<@%d> lost **%s bits**.", userID, common.FormatBalance(result.Bet))
		color = common.ColorDanger
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Bet",
			Value:  common.FormatBalance(result.Bet),
			Inline: true,
		},
		{
			Name:   "Win chance",
			Value:  common.FormatPercent(result.Odds.Win),
			Inline: true,
		},
		{
			Name:   "Profit",
			Value:  common.FormatSignedBalance(result.Profit),
			Inline: true,
		},
		{
			Name:   "Balance",
			Value:  fmt.Sprintf("%s → **%s bits**", common.FormatBalance(result.BalanceBefore), common.FormatBalance(result.BalanceAfter)),
			Inline: false,
		},
	}

	if result.PreviousPhase != result.State.CurrentPhase {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Phase",
			Value:  fmt.Sprintf("%s → %s", phaseLabel(result.PreviousPhase), phaseLabel(result.State.CurrentPhase)),
			Inline: false,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Landed on slice %d of %d • round %d", result.Wheel.SliceIndex+1, engine.SliceCount, result.State.TotalGames),
		},
	}
}

// buildOddsEmbed renders the odds panel
func buildOddsEmbed(view *models.OddsView) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📊 Current Odds",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Phase",
				Value:  phaseLabel(view.Phase),
				Inline: false,
			},
			{
				Name:   "Win",
				Value:  common.FormatPercent(view.Odds.Win),
				Inline: true,
			},
			{
				Name:   "Lose",
				Value:  common.FormatPercent(view.Odds.Lose),
				Inline: true,
			},
			{
				Name:   "Rounds played",
				Value:  fmt.Sprintf("%d / %d", view.TotalGames, view.Threshold),
				Inline: false,
			},
			{
				Name:   "Loss streak",
				Value:  fmt.Sprintf("%d / %d", view.ConsecutiveLosses, view.ResetThreshold),
				Inline: true,
			},
		},
	}
}
