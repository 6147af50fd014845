package history

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"roulette/bot/common"
	"roulette/models"
)

// buildHistoryEmbed lists records newest first
func buildHistoryEmbed(userID int64, records []*models.BetRecord) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📜 Bet History",
		Color: common.ColorPrimary,
	}

	if len(records) == 0 {
		embed.Description = fmt.Sprintf("<@%d> has no bets yet. Try /spin!", userID)
		return embed
	}

	var b strings.Builder
	for _, r := range records {
		icon := "🟥"
		if r.Outcome == models.OutcomeWin {
			icon = "🟩"
		}
		fmt.Fprintf(&b, "%s %s bet **%s** → %s (balance %s)\n",
			icon,
			common.FormatDiscordTimestamp(r.CreatedAt, "R"),
			common.FormatBalance(r.Bet),
			common.FormatSignedBalance(r.Profit),
			common.FormatBalance(r.BalanceAfter))
	}
	embed.Description = b.String()
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Showing the last %d bets", len(records)),
	}
	return embed
}

// buildStatsEmbed summarises the retained history
func buildStatsEmbed(userID int64, stats *models.BetStats) *discordgo.MessageEmbed {
	color := common.ColorSuccess
	if stats.NetProfit < 0 {
		color = common.ColorDanger
	}

	return &discordgo.MessageEmbed{
		Title:       "📈 Roulette Stats",
		Description: fmt.Sprintf("<@%d>", userID),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Bets",
				Value:  fmt.Sprintf("%d (%d W / %d L)", stats.TotalBets, stats.TotalWins, stats.TotalLosses),
				Inline: true,
			},
			{
				Name:   "Win rate",
				Value:  fmt.Sprintf("%.1f%%", stats.WinPercentage),
				Inline: true,
			},
			{
				Name:   "Net profit",
				Value:  common.FormatSignedBalance(stats.NetProfit),
				Inline: true,
			},
			{
				Name:   "Wagered",
				Value:  common.FormatBalance(stats.TotalWagered),
				Inline: true,
			},
			{
				Name:   "Biggest win",
				Value:  common.FormatBalance(stats.BiggestWin),
				Inline: true,
			},
			{
				Name:   "Biggest loss",
				Value:  common.FormatBalance(stats.BiggestLoss),
				Inline: true,
			},
		},
	}
}
