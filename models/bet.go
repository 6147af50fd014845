package models

import "time"

// BetRecord is one entry of a player's bet history
type BetRecord struct {
	ID           int64     `db:"id" json:"id"`
	PlayerID     int64     `db:"player_id" json:"-"`
	Bet          int64     `db:"bet" json:"bet"`
	Outcome      Outcome   `db:"outcome" json:"outcome"`
	Prize        int64     `db:"prize" json:"prize"`
	BalanceAfter int64     `db:"balance_after" json:"balanceAfter"`
	Profit       int64     `db:"profit" json:"profit"`
	CreatedAt    time.Time `db:"created_at" json:"timestamp"`
}

// WheelStop is where the wheel comes to rest for a round
type WheelStop struct {
	SliceIndex int     `json:"sliceIndex"`
	Angle      float64 `json:"angle"`
}

// RoundResult represents the outcome of a round (returned to the player)
type RoundResult struct {
	RoundID       string     `json:"roundId"`
	Outcome       Outcome    `json:"outcome"`
	Odds          Odds       `json:"odds"`
	Bet           int64      `json:"bet"`
	Prize         int64      `json:"prize"`
	Profit        int64      `json:"profit"`
	BalanceBefore int64      `json:"balanceBefore"`
	BalanceAfter  int64      `json:"balanceAfter"`
	State         GameState  `json:"state"`
	PreviousPhase Phase      `json:"previousPhase"`
	Wheel         WheelStop  `json:"wheel"`
	Record        *BetRecord `json:"record,omitempty"`
}

// LedgerResult represents the outcome of a deposit or withdrawal
type LedgerResult struct {
	Amount     int64 `json:"amount"`
	NewBalance int64 `json:"balance"`
}
