package httpapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"roulette/models"
)

type mockRouletteService struct {
	mock.Mock
}

func (m *mockRouletteService) PlayRound(ctx context.Context, playerID int64, username string, bet int64) (*models.RoundResult, error) {
	args := m.Called(ctx, playerID, username, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoundResult), args.Error(1)
}

func (m *mockRouletteService) CurrentOdds(ctx context.Context, playerID int64) (*models.OddsView, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OddsView), args.Error(1)
}

func (m *mockRouletteService) ResetState(ctx context.Context, playerID int64) (models.GameState, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(models.GameState), args.Error(1)
}

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) Balance(ctx context.Context, playerID int64) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLedgerService) Deposit(ctx context.Context, playerID int64, username string, amount int64) (*models.LedgerResult, error) {
	args := m.Called(ctx, playerID, username, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerResult), args.Error(1)
}

func (m *mockLedgerService) Withdraw(ctx context.Context, playerID int64, username string, amount int64) (*models.LedgerResult, error) {
	args := m.Called(ctx, playerID, username, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerResult), args.Error(1)
}

type mockHistoryService struct {
	mock.Mock
}

func (m *mockHistoryService) Recent(ctx context.Context, playerID int64, limit int) ([]*models.BetRecord, error) {
	args := m.Called(ctx, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BetRecord), args.Error(1)
}

func (m *mockHistoryService) Clear(ctx context.Context, playerID int64) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHistoryService) Stats(ctx context.Context, playerID int64) (*models.BetStats, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetStats), args.Error(1)
}
