package service

import "errors"

var (
	// ErrInvalidAmount is returned for non-positive bets and ledger amounts, bets above the
	// limit, and amounts whose payout or deposit would overflow the balance
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientBalance is returned when a bet or withdrawal exceeds the balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRoundInProgress is returned while another round for the same player is being settled
	ErrRoundInProgress = errors.New("round already in progress")

	// ErrPlayerNotFound is returned by reads that require an existing player
	ErrPlayerNotFound = errors.New("player not found")
)
