package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette/events"
	"roulette/repository/testutil"
)

func TestUnitOfWork(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	received := make(chan events.Event, 4)
	bus.Subscribe(events.EventTypeGameStateReset, func(ctx context.Context, event events.Event) {
		received <- event
	})
	factory := NewUnitOfWorkFactory(testDB.DB, bus)

	t.Run("commit persists and flushes events", func(t *testing.T) {
		testDB.Truncate(t)

		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		_, err := uow.PlayerRepository().Create(ctx, 1, "alice", 10)
		require.NoError(t, err)
		uow.EventBus().Publish(events.GameStateResetEvent{PlayerID: 1})
		require.NoError(t, uow.Commit())
		require.NoError(t, uow.Rollback())

		player, err := NewPlayerRepository(testDB.DB).GetByID(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, player)

		select {
		case ev := <-received:
			assert.Equal(t, events.GameStateResetEvent{PlayerID: 1}, ev)
		case <-time.After(time.Second):
			t.Fatal("event not flushed after commit")
		}
	})

	t.Run("rollback discards writes and events", func(t *testing.T) {
		testDB.Truncate(t)

		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		_, err := uow.PlayerRepository().Create(ctx, 2, "bob", 10)
		require.NoError(t, err)
		uow.EventBus().Publish(events.GameStateResetEvent{PlayerID: 2})
		require.NoError(t, uow.Rollback())

		player, err := NewPlayerRepository(testDB.DB).GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Nil(t, player)

		select {
		case ev := <-received:
			t.Fatalf("unexpected event after rollback: %v", ev)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("begin twice fails", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		assert.Error(t, uow.Begin(ctx))
	})

	t.Run("repositories require begin", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() { uow.PlayerRepository() })
		assert.Error(t, uow.Commit())
	})
}
