package events

import (
	"context"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette/models"
)

func waitFor(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestTransactionalBus_FlushDeliversAfterCommit(t *testing.T) {
	mainBus := NewBus()
	txBus := NewTransactionalBus(mainBus)

	received := make(chan Event, 2)
	mainBus.Subscribe(EventTypeBalanceChange, func(ctx context.Context, event Event) {
		received <- event
	})

	event := BalanceChangeEvent{
		PlayerID:        123456,
		OldBalance:      1000,
		NewBalance:      1500,
		TransactionType: models.TransactionTypeBetWin,
		ChangeAmount:    500,
	}
	txBus.Publish(event)

	// nothing is delivered before the flush
	select {
	case <-received:
		t.Fatal("event delivered before flush")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, 1, txBus.Pending())

	require.NoError(t, txBus.Flush(context.Background()))

	got := waitFor(t, received)
	assert.Equal(t, event, got)
	assert.Equal(t, 0, txBus.Pending())
}

func TestTransactionalBus_DiscardDropsEvents(t *testing.T) {
	mainBus := NewBus()
	txBus := NewTransactionalBus(mainBus)

	received := make(chan Event, 1)
	mainBus.Subscribe(EventTypeRoundPlayed, func(ctx context.Context, event Event) {
		received <- event
	})

	txBus.Publish(RoundPlayedEvent{RoundID: "r1", PlayerID: 1})
	txBus.Discard()
	require.NoError(t, txBus.Flush(context.Background()))

	select {
	case ev := <-received:
		t.Fatalf("discarded event delivered: %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTransactionalBus_FlushSurvivesCancelledContext(t *testing.T) {
	mainBus := NewBus()
	txBus := NewTransactionalBus(mainBus)

	ctxErr := make(chan error, 1)
	mainBus.Subscribe(EventTypePhaseChanged, func(ctx context.Context, event Event) {
		ctxErr <- ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	txBus.Publish(PhaseChangedEvent{PlayerID: 1, From: models.PhaseInitial, To: models.PhaseHouse, TotalGames: 4})
	require.NoError(t, txBus.Flush(ctx))
	cancel()

	select {
	case err := <-ctxErr:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}
}

func TestBus_EmitOnlyMatchingHandlers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var got []EventType
	var wg sync.WaitGroup
	wg.Add(2)

	record := func(ctx context.Context, event Event) {
		mu.Lock()
		got = append(got, event.Type())
		mu.Unlock()
		wg.Done()
	}
	bus.Subscribe(EventTypeGameStateReset, record)
	bus.Subscribe(EventTypeGameStateReset, record)
	bus.Subscribe(EventTypePlayerCreated, func(ctx context.Context, event Event) {
		t.Error("player created handler should not run")
	})

	bus.Emit(context.Background(), GameStateResetEvent{PlayerID: 7})
	wg.Wait()

	assert.Equal(t, []EventType{EventTypeGameStateReset, EventTypeGameStateReset}, got)
}

func TestBus_RecoversFromHandlerPanic(t *testing.T) {
	bus := NewBus()

	done := make(chan Event, 1)
	bus.Subscribe(EventTypePlayerCreated, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypePlayerCreated, func(ctx context.Context, event Event) {
		done <- event
	})

	bus.Emit(context.Background(), PlayerCreatedEvent{PlayerID: 1, Username: "alice"})

	got := waitFor(t, done)
	assert.Equal(t, PlayerCreatedEvent{PlayerID: 1, Username: "alice"}, got)
}

func TestSubscribeAuditLog(t *testing.T) {
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	bus := NewBus()
	SubscribeAuditLog(bus)

	bus.Emit(context.Background(), RoundPlayedEvent{
		RoundID:  "round-1",
		PlayerID: 42,
		Bet:      10,
		Outcome:  models.OutcomeWin,
		State:    models.GameState{TotalGames: 1, CurrentPhase: models.PhaseInitial},
	})

	require.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Message == "Round played" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	for _, entry := range hook.AllEntries() {
		if entry.Message == "Round played" {
			assert.Equal(t, log.InfoLevel, entry.Level)
			assert.Equal(t, "round-1", entry.Data["roundID"])
			assert.Equal(t, int64(42), entry.Data["playerID"])
		}
	}
}
