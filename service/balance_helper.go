package service

import (
	"context"
	"fmt"
	"math"

	"roulette/events"
	"roulette/models"
)

// RecordBalanceChange records a balance history entry and queues the matching
// event on the unit of work. Every balance mutation goes through here.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, history *models.BalanceHistory) error {
	if err := uow.BalanceHistoryRepository().Record(ctx, history); err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}

	uow.EventBus().Publish(events.BalanceChangeEvent{
		PlayerID:        history.PlayerID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		TransactionType: history.TransactionType,
		ChangeAmount:    history.ChangeAmount,
	})

	return nil
}

// fitsBalance reports whether adding change to balance stays within int64
func fitsBalance(balance, change int64) bool {
	return change <= 0 || balance <= math.MaxInt64-change
}
