package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"roulette/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeRoundPlayed    EventType = "round_played"
	EventTypeBalanceChange  EventType = "balance_change"
	EventTypePhaseChanged   EventType = "phase_changed"
	EventTypeGameStateReset EventType = "game_state_reset"
	EventTypePlayerCreated  EventType = "player_created"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// RoundPlayedEvent is published once per committed round
type RoundPlayedEvent struct {
	RoundID      string           `json:"round_id"`
	PlayerID     int64            `json:"player_id"`
	Bet          int64            `json:"bet"`
	Outcome      models.Outcome   `json:"outcome"`
	Odds         models.Odds      `json:"odds"`
	Prize        int64            `json:"prize"`
	Profit       int64            `json:"profit"`
	BalanceAfter int64            `json:"balance_after"`
	State        models.GameState `json:"state"`
}

func (e RoundPlayedEvent) Type() EventType {
	return EventTypeRoundPlayed
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	PlayerID        int64                  `json:"player_id"`
	OldBalance      int64                  `json:"old_balance"`
	NewBalance      int64                  `json:"new_balance"`
	TransactionType models.TransactionType `json:"transaction_type"`
	ChangeAmount    int64                  `json:"change_amount"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// PhaseChangedEvent fires when a round moves the phase label
type PhaseChangedEvent struct {
	PlayerID   int64        `json:"player_id"`
	From       models.Phase `json:"from"`
	To         models.Phase `json:"to"`
	TotalGames int          `json:"total_games"`
}

func (e PhaseChangedEvent) Type() EventType {
	return EventTypePhaseChanged
}

// GameStateResetEvent fires when an operator resets a player's game state
type GameStateResetEvent struct {
	PlayerID int64 `json:"player_id"`
}

func (e GameStateResetEvent) Type() EventType {
	return EventTypeGameStateReset
}

// PlayerCreatedEvent represents a new player registration
type PlayerCreatedEvent struct {
	PlayerID       int64  `json:"player_id"`
	Username       string `json:"username"`
	InitialBalance int64  `json:"initial_balance"`
}

func (e PlayerCreatedEvent) Type() EventType {
	return EventTypePlayerCreated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit hands an event to every registered handler. Handlers run on their own
// goroutines and a panicking handler is logged, not propagated.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events published inside a unit of work until the
// transaction commits.
type TransactionalBus struct {
	mu      sync.Mutex
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, e)
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Queued event until commit")
}

// Flush emits pending events. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	// handlers must not inherit the request context, it is usually cancelled
	// right after the commit returns
	eventCtx := context.WithoutCancel(ctx)

	for _, ev := range pending {
		b.real.Emit(eventCtx, ev)
	}
	log.WithField("flushed", len(pending)).Debug("Flushed pending events")
	return nil
}

// Discard drops pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
}

// Pending returns how many events are waiting for a commit
func (b *TransactionalBus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
