package roulette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"roulette/bot/common"
)

const spinButtonPrefix = "spin_"

// buildSpinButtons offers the same, doubled and halved bet for the next round.
// Bets the balance cannot cover are shown disabled.
func buildSpinButtons(lastBet, balance int64) []discordgo.MessageComponent {
	half := lastBet / 2
	if half < 1 {
		half = 1
	}

	options := []struct {
		action string
		label  string
		amount int64
	}{
		{"half", "½ Half", half},
		{"same", "🔁 Spin again", lastBet},
		{"double", "2× Double", lastBet * 2},
	}

	buttons := make([]discordgo.MessageComponent, 0, len(options))
	for _, opt := range options {
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("%s (%s)", opt.label, common.FormatBalance(opt.amount)),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("%s%s_%d", spinButtonPrefix, opt.action, opt.amount),
			Disabled: opt.amount > balance,
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

// parseSpinButton extracts the bet carried by a spin button custom ID
func parseSpinButton(customID string) (action string, amount int64, ok bool) {
	rest, found := strings.CutPrefix(customID, spinButtonPrefix)
	if !found {
		return "", 0, false
	}

	action, amountStr, found := strings.Cut(rest, "_")
	if !found {
		return "", 0, false
	}
	switch action {
	case "half", "same", "double":
	default:
		return "", 0, false
	}

	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil || amount <= 0 {
		return "", 0, false
	}
	return action, amount, true
}
