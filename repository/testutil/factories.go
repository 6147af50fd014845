package testutil

import (
	"time"

	"roulette/models"
)

// CreateTestPlayer creates a test player with default values
func CreateTestPlayer(playerID int64, username string) *models.Player {
	now := time.Now()
	return &models.Player{
		ID:        playerID,
		Username:  username,
		Balance:   1000,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestPlayerWithBalance creates a test player with a specific balance
func CreateTestPlayerWithBalance(playerID int64, username string, balance int64) *models.Player {
	player := CreateTestPlayer(playerID, username)
	player.Balance = balance
	return player
}

// CreateTestBetRecord creates a settled bet record for playerID
func CreateTestBetRecord(playerID int64, bet int64, outcome models.Outcome, balanceAfter int64) *models.BetRecord {
	record := &models.BetRecord{
		PlayerID:     playerID,
		Bet:          bet,
		Outcome:      outcome,
		BalanceAfter: balanceAfter,
		Profit:       -bet,
	}
	if outcome == models.OutcomeWin {
		record.Prize = bet * 2
		record.Profit = bet
	}
	return record
}

// CreateTestBalanceHistory creates a test balance history entry
func CreateTestBalanceHistory(playerID int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		PlayerID:        playerID,
		BalanceBefore:   1000,
		BalanceAfter:    900,
		ChangeAmount:    -100,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestBalanceHistoryWithAmounts creates a test balance history with specific amounts
func CreateTestBalanceHistoryWithAmounts(playerID int64, before, after, change int64, transactionType models.TransactionType) *models.BalanceHistory {
	history := CreateTestBalanceHistory(playerID, transactionType)
	history.BalanceBefore = before
	history.BalanceAfter = after
	history.ChangeAmount = change
	return history
}
