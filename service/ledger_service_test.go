package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roulette/config"
	"roulette/events"
	"roulette/models"
)

func TestLedgerService_Balance(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewLedgerService(m.factory, config.NewTestConfig())

	m.players.On("GetByID", ctx, int64(1)).Return(&models.Player{ID: 1, Balance: 750}, nil)
	m.players.On("GetByID", ctx, int64(2)).Return(nil, nil)

	balance, err := svc.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(750), balance)

	balance, err = svc.Balance(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	m.assertExpectations(t)
}

func TestLedgerService_Deposit(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewLedgerService(m.factory, config.NewTestConfig())

	m.players.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.Player{ID: 1, Balance: 100}, nil)
	m.players.On("UpdateBalance", ctx, int64(1), int64(350)).Return(nil)
	m.history.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.BalanceBefore == 100 &&
			h.BalanceAfter == 350 &&
			h.ChangeAmount == 250 &&
			h.TransactionType == models.TransactionTypeDeposit
	})).Return(nil)
	m.publisher.On("Publish", events.BalanceChangeEvent{
		PlayerID:        1,
		OldBalance:      100,
		NewBalance:      350,
		TransactionType: models.TransactionTypeDeposit,
		ChangeAmount:    250,
	}).Return()
	m.uow.On("Commit").Return(nil)

	result, err := svc.Deposit(ctx, 1, "alice", 250)

	require.NoError(t, err)
	assert.Equal(t, &models.LedgerResult{Amount: 250, NewBalance: 350}, result)
	m.assertExpectations(t)
}

func TestLedgerService_DepositCreatesPlayer(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewLedgerService(m.factory, config.NewTestConfig())

	m.players.On("GetByIDForUpdate", ctx, int64(5)).Return(nil, nil)
	m.players.On("Create", ctx, int64(5), "bob", int64(0)).Return(&models.Player{ID: 5, Username: "bob"}, nil)
	m.publisher.On("Publish", events.PlayerCreatedEvent{PlayerID: 5, Username: "bob"}).Return()
	m.players.On("UpdateBalance", ctx, int64(5), int64(40)).Return(nil)
	m.history.On("Record", ctx, mock.AnythingOfType("*models.BalanceHistory")).Return(nil).Once()
	m.publisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
	m.uow.On("Commit").Return(nil)

	result, err := svc.Deposit(ctx, 5, "bob", 40)

	require.NoError(t, err)
	assert.Equal(t, int64(40), result.NewBalance)
	m.assertExpectations(t)
}

func TestLedgerService_Withdraw(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewLedgerService(m.factory, config.NewTestConfig())

	m.players.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.Player{ID: 1, Balance: 100}, nil)
	m.players.On("UpdateBalance", ctx, int64(1), int64(0)).Return(nil)
	m.history.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.ChangeAmount == -100 && h.TransactionType == models.TransactionTypeWithdrawal
	})).Return(nil)
	m.publisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return()
	m.uow.On("Commit").Return(nil)

	result, err := svc.Withdraw(ctx, 1, "alice", 100)

	require.NoError(t, err)
	assert.Equal(t, &models.LedgerResult{Amount: 100, NewBalance: 0}, result)
	m.assertExpectations(t)
}

func TestLedgerService_WithdrawInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewLedgerService(m.factory, config.NewTestConfig())

	m.players.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.Player{ID: 1, Balance: 99}, nil)

	result, err := svc.Withdraw(ctx, 1, "alice", 100)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	m.players.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestLedgerService_DepositWouldOverflowBalance(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewLedgerService(m.factory, config.NewTestConfig())

	m.players.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.Player{ID: 1, Balance: math.MaxInt64 - 5}, nil)

	result, err := svc.Deposit(ctx, 1, "alice", 10)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.NotErrorIs(t, err, ErrInsufficientBalance)
	m.players.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	m.uow.AssertNotCalled(t, "Commit")
	m.assertExpectations(t)
}

func TestLedgerService_RejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	svc := NewLedgerService(m.factory, config.NewTestConfig())

	for _, amount := range []int64{0, -1} {
		_, err := svc.Deposit(ctx, 1, "alice", amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.Withdraw(ctx, 1, "alice", amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	m.factory.AssertNotCalled(t, "Create")
}

func TestFitsBalance(t *testing.T) {
	tests := []struct {
		balance, change int64
		want            bool
	}{
		{100, 50, true},
		{math.MaxInt64 - 10, 10, true},
		{math.MaxInt64 - 10, 11, false},
		{math.MaxInt64, 1, false},
		{math.MaxInt64, -100, true},
		{0, math.MaxInt64, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fitsBalance(tt.balance, tt.change), "balance %d change %d", tt.balance, tt.change)
	}
}
