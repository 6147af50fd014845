package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roulette/engine"
	"roulette/models"
)

// testMocks wires one mock unit of work with every repository
type testMocks struct {
	factory   *MockUnitOfWorkFactory
	uow       *MockUnitOfWork
	players   *MockPlayerRepository
	states    *MockGameStateRepository
	bets      *MockBetRepository
	history   *MockBalanceHistoryRepository
	publisher *MockEventPublisher
}

func newTestMocks(ctx context.Context) *testMocks {
	m := &testMocks{
		factory:   new(MockUnitOfWorkFactory),
		uow:       new(MockUnitOfWork),
		players:   new(MockPlayerRepository),
		states:    new(MockGameStateRepository),
		bets:      new(MockBetRepository),
		history:   new(MockBalanceHistoryRepository),
		publisher: new(MockEventPublisher),
	}
	m.uow.SetRepositories(m.players, m.states, m.bets, m.history, m.publisher)

	m.factory.On("Create").Return(m.uow)
	m.uow.On("Begin", ctx).Return(nil)
	m.uow.On("Rollback").Return(nil)
	return m
}

func (m *testMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.players.AssertExpectations(t)
	m.states.AssertExpectations(t)
	m.bets.AssertExpectations(t)
	m.history.AssertExpectations(t)
	m.publisher.AssertExpectations(t)
}

func newTestEngine(t *testing.T, draws ...float64) (*engine.Engine, *engine.FixedSource) {
	t.Helper()
	src := engine.NewFixedSource(draws...)
	eng, err := engine.New(engine.DefaultProbabilityConfig(), src)
	require.NoError(t, err)
	return eng, src
}

func encodeState(t *testing.T, state models.GameState) []byte {
	t.Helper()
	payload, err := models.EncodeGameState(state)
	require.NoError(t, err)
	return payload
}

// payloadOf matches a saved payload that decodes to want
func payloadOf(want models.GameState) any {
	return mock.MatchedBy(func(payload []byte) bool {
		got, err := models.DecodeGameState(payload)
		return err == nil && got == want
	})
}
