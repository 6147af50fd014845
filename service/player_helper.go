package service

import (
	"context"
	"fmt"

	"roulette/events"
	"roulette/models"
)

// getOrCreatePlayer returns the player with its row locked for the rest of
// the unit of work, registering it with startingBalance on first sight.
func getOrCreatePlayer(ctx context.Context, uow UnitOfWork, playerID int64, username string, startingBalance int64) (*models.Player, error) {
	repo := uow.PlayerRepository()

	player, err := repo.GetByIDForUpdate(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player != nil {
		return player, nil
	}

	player, err = repo.Create(ctx, playerID, username, startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	if player == nil {
		// lost a creation race, the other transaction has committed the row
		player, err = repo.GetByIDForUpdate(ctx, playerID)
		if err != nil {
			return nil, fmt.Errorf("failed to get player: %w", err)
		}
		if player == nil {
			return nil, fmt.Errorf("player %d missing after concurrent create: %w", playerID, ErrPlayerNotFound)
		}
		return player, nil
	}

	uow.EventBus().Publish(events.PlayerCreatedEvent{
		PlayerID:       playerID,
		Username:       username,
		InitialBalance: startingBalance,
	})

	if startingBalance > 0 {
		history := &models.BalanceHistory{
			PlayerID:        playerID,
			BalanceBefore:   0,
			BalanceAfter:    startingBalance,
			ChangeAmount:    startingBalance,
			TransactionType: models.TransactionTypeInitial,
			TransactionMetadata: map[string]any{
				"username": username,
			},
		}
		if err := RecordBalanceChange(ctx, uow, history); err != nil {
			return nil, fmt.Errorf("failed to record starting balance: %w", err)
		}
	}

	return player, nil
}
