package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette/events"
	"roulette/models"
)

func TestGameStateStore_Load(t *testing.T) {
	t.Run("missing state yields defaults", func(t *testing.T) {
		ctx := context.Background()
		m := newTestMocks(ctx)
		store := NewGameStateStore(m.factory)

		m.states.On("GetPayload", ctx, int64(1)).Return(nil, nil)

		state, err := store.Load(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, models.DefaultGameState(), state)
		m.assertExpectations(t)
	})

	t.Run("stored state is returned", func(t *testing.T) {
		ctx := context.Background()
		m := newTestMocks(ctx)
		store := NewGameStateStore(m.factory)
		stored := models.GameState{TotalGames: 9, ConsecutiveLosses: 3, CurrentPhase: models.PhaseHouse}

		m.states.On("GetPayload", ctx, int64(1)).Return(encodeState(t, stored), nil)

		state, err := store.Load(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, stored, state)
	})

	t.Run("malformed state yields defaults", func(t *testing.T) {
		payloads := [][]byte{
			[]byte("not json"),
			[]byte(`{"totalGames":-1,"consecutiveLosses":0,"currentPhase":"initial"}`),
			[]byte(`{"totalGames":2,"consecutiveLosses":5,"currentPhase":"initial"}`),
			[]byte(`{"totalGames":2,"consecutiveLosses":0,"currentPhase":"jackpot"}`),
		}
		for _, payload := range payloads {
			ctx := context.Background()
			m := newTestMocks(ctx)
			store := NewGameStateStore(m.factory)

			m.states.On("GetPayload", ctx, int64(1)).Return(payload, nil)

			state, err := store.Load(ctx, 1)

			require.NoError(t, err)
			assert.Equal(t, models.DefaultGameState(), state, "payload %s", payload)
		}
	})

	t.Run("repository failure is returned", func(t *testing.T) {
		ctx := context.Background()
		m := newTestMocks(ctx)
		store := NewGameStateStore(m.factory)

		m.states.On("GetPayload", ctx, int64(1)).Return(nil, errors.New("db down"))

		_, err := store.Load(ctx, 1)

		assert.ErrorContains(t, err, "failed to load game state")
	})

	t.Run("begin failure is returned", func(t *testing.T) {
		ctx := context.Background()
		m := &testMocks{factory: new(MockUnitOfWorkFactory), uow: new(MockUnitOfWork)}
		m.factory.On("Create").Return(m.uow)
		m.uow.On("Begin", ctx).Return(errors.New("pool closed"))
		store := NewGameStateStore(m.factory)

		_, err := store.Load(ctx, 1)

		assert.ErrorContains(t, err, "failed to begin transaction")
	})
}

func TestGameStateStore_Save(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	store := NewGameStateStore(m.factory)
	state := models.GameState{TotalGames: 4, ConsecutiveLosses: 2, CurrentPhase: models.PhaseHouse}

	m.states.On("SavePayload", ctx, int64(1), payloadOf(state)).Return(nil)
	m.uow.On("Commit").Return(nil)

	require.NoError(t, store.Save(ctx, 1, state))
	m.assertExpectations(t)
}

func TestGameStateStore_SaveRejectsInvalidState(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	store := NewGameStateStore(m.factory)

	err := store.Save(ctx, 1, models.GameState{TotalGames: 1, ConsecutiveLosses: 2, CurrentPhase: models.PhaseInitial})

	assert.Error(t, err)
	m.uow.AssertNotCalled(t, "Commit")
}

func TestGameStateStore_ResetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestMocks(ctx)
	store := NewGameStateStore(m.factory)

	m.states.On("SavePayload", ctx, int64(1), payloadOf(models.DefaultGameState())).Return(nil).Twice()
	m.publisher.On("Publish", events.GameStateResetEvent{PlayerID: 1}).Return().Twice()
	m.uow.On("Commit").Return(nil).Twice()

	first, err := store.Reset(ctx, 1)
	require.NoError(t, err)
	second, err := store.Reset(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultGameState(), first)
	assert.Equal(t, first, second)
	m.assertExpectations(t)
}
