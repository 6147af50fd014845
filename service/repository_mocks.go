package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"roulette/events"
	"roulette/models"
)

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, playerID int64) (*models.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByIDForUpdate(ctx context.Context, playerID int64) (*models.Player, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) Create(ctx context.Context, playerID int64, username string, initialBalance int64) (*models.Player, error) {
	args := m.Called(ctx, playerID, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) UpdateBalance(ctx context.Context, playerID int64, newBalance int64) error {
	args := m.Called(ctx, playerID, newBalance)
	return args.Error(0)
}

// MockGameStateRepository is a mock implementation of GameStateRepository
type MockGameStateRepository struct {
	mock.Mock
}

func (m *MockGameStateRepository) GetPayload(ctx context.Context, playerID int64) ([]byte, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockGameStateRepository) SavePayload(ctx context.Context, playerID int64, payload []byte) error {
	args := m.Called(ctx, playerID, payload)
	return args.Error(0)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, record *models.BetRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBetRepository) Prune(ctx context.Context, playerID int64, keep int) (int64, error) {
	args := m.Called(ctx, playerID, keep)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBetRepository) GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*models.BetRecord, error) {
	args := m.Called(ctx, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BetRecord), args.Error(1)
}

func (m *MockBetRepository) DeleteByPlayer(ctx context.Context, playerID int64) (int64, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBetRepository) GetStats(ctx context.Context, playerID int64) (*models.BetStats, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetStats), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repository getters
// return whatever SetRepositories installed.
type MockUnitOfWork struct {
	mock.Mock
	playerRepo         PlayerRepository
	gameStateRepo      GameStateRepository
	betRepo            BetRepository
	balanceHistoryRepo BalanceHistoryRepository
	eventBus           EventPublisher
}

// SetRepositories installs the repositories and publisher returned by the getters
func (m *MockUnitOfWork) SetRepositories(playerRepo PlayerRepository, gameStateRepo GameStateRepository, betRepo BetRepository, balanceHistoryRepo BalanceHistoryRepository, eventBus EventPublisher) {
	m.playerRepo = playerRepo
	m.gameStateRepo = gameStateRepo
	m.betRepo = betRepo
	m.balanceHistoryRepo = balanceHistoryRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) PlayerRepository() PlayerRepository {
	return m.playerRepo
}

func (m *MockUnitOfWork) GameStateRepository() GameStateRepository {
	return m.gameStateRepo
}

func (m *MockUnitOfWork) BetRepository() BetRepository {
	return m.betRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.balanceHistoryRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
