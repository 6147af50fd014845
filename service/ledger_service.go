package service

import (
	"context"
	"fmt"

	"roulette/config"
	"roulette/models"
)

type ledgerService struct {
	uowFactory UnitOfWorkFactory
	config     *config.Config
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory, cfg *config.Config) LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
		config:     cfg,
	}
}

func (s *ledgerService) Balance(ctx context.Context, playerID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	player, err := uow.PlayerRepository().GetByID(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return 0, nil
	}
	return player.Balance, nil
}

func (s *ledgerService) Deposit(ctx context.Context, playerID int64, username string, amount int64) (*models.LedgerResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: deposit must be positive, got %d", ErrInvalidAmount, amount)
	}
	return s.apply(ctx, playerID, username, amount, models.TransactionTypeDeposit)
}

func (s *ledgerService) Withdraw(ctx context.Context, playerID int64, username string, amount int64) (*models.LedgerResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: withdrawal must be positive, got %d", ErrInvalidAmount, amount)
	}
	return s.apply(ctx, playerID, username, -amount, models.TransactionTypeWithdrawal)
}

// apply adds change to the player's balance, refusing to go below zero
func (s *ledgerService) apply(ctx context.Context, playerID int64, username string, change int64, transactionType models.TransactionType) (*models.LedgerResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	player, err := getOrCreatePlayer(ctx, uow, playerID, username, s.config.StartingBalance)
	if err != nil {
		return nil, err
	}

	if !fitsBalance(player.Balance, change) {
		return nil, fmt.Errorf("%w: deposit of %d would overflow the balance of %d", ErrInvalidAmount, change, player.Balance)
	}

	newBalance := player.Balance + change
	if newBalance < 0 {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, player.Balance, -change)
	}

	if err := uow.PlayerRepository().UpdateBalance(ctx, playerID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	history := &models.BalanceHistory{
		PlayerID:        playerID,
		BalanceBefore:   player.Balance,
		BalanceAfter:    newBalance,
		ChangeAmount:    change,
		TransactionType: transactionType,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	amount := change
	if amount < 0 {
		amount = -amount
	}
	return &models.LedgerResult{Amount: amount, NewBalance: newBalance}, nil
}
