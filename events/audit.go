package events

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// SubscribeAuditLog writes every committed gameplay and ledger event to the log
func SubscribeAuditLog(bus *Bus) {
	bus.Subscribe(EventTypeRoundPlayed, func(ctx context.Context, event Event) {
		e, ok := event.(RoundPlayedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"roundID":           e.RoundID,
			"playerID":          e.PlayerID,
			"bet":               e.Bet,
			"outcome":           e.Outcome,
			"winProbability":    e.Odds.Win,
			"profit":            e.Profit,
			"balanceAfter":      e.BalanceAfter,
			"totalGames":        e.State.TotalGames,
			"consecutiveLosses": e.State.ConsecutiveLosses,
			"phase":             e.State.CurrentPhase,
		}).Info("Round played")
	})

	bus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		e, ok := event.(BalanceChangeEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"playerID":        e.PlayerID,
			"transactionType": e.TransactionType,
			"change":          e.ChangeAmount,
			"oldBalance":      e.OldBalance,
			"newBalance":      e.NewBalance,
		}).Info("Balance changed")
	})

	bus.Subscribe(EventTypePhaseChanged, func(ctx context.Context, event Event) {
		e, ok := event.(PhaseChangedEvent)
		if !ok {
			return
		}
		log.WithFields(log.Fields{
			"playerID":   e.PlayerID,
			"from":       e.From,
			"to":         e.To,
			"totalGames": e.TotalGames,
		}).Info("Phase changed")
	})

	bus.Subscribe(EventTypeGameStateReset, func(ctx context.Context, event Event) {
		if e, ok := event.(GameStateResetEvent); ok {
			log.WithField("playerID", e.PlayerID).Warn("Game state reset")
		}
	})

	bus.Subscribe(EventTypePlayerCreated, func(ctx context.Context, event Event) {
		if e, ok := event.(PlayerCreatedEvent); ok {
			log.WithFields(log.Fields{
				"playerID": e.PlayerID,
				"username": e.Username,
			}).Info("Player created")
		}
	})
}
