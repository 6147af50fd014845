package service

import (
	"context"

	"roulette/events"
	"roulette/models"
)

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	// GetByID retrieves a player, returning nil when absent
	GetByID(ctx context.Context, playerID int64) (*models.Player, error)

	// GetByIDForUpdate retrieves a player and locks the row until the transaction ends
	GetByIDForUpdate(ctx context.Context, playerID int64) (*models.Player, error)

	// Create inserts a player, returning nil if another transaction created it first
	Create(ctx context.Context, playerID int64, username string, initialBalance int64) (*models.Player, error)

	// UpdateBalance sets a player's balance
	UpdateBalance(ctx context.Context, playerID int64, newBalance int64) error
}

// GameStateRepository stores the raw game state payload per player
type GameStateRepository interface {
	// GetPayload returns the stored payload, or nil when the player has none
	GetPayload(ctx context.Context, playerID int64) ([]byte, error)

	// SavePayload overwrites the stored payload
	SavePayload(ctx context.Context, playerID int64, payload []byte) error
}

// BetRepository defines the interface for bet history access
type BetRepository interface {
	// Create appends a bet record
	Create(ctx context.Context, record *models.BetRecord) error

	// Prune deletes all but the newest keep records of a player
	Prune(ctx context.Context, playerID int64, keep int) (int64, error)

	// GetByPlayer returns up to limit records, newest first
	GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*models.BetRecord, error)

	// DeleteByPlayer removes every record of a player
	DeleteByPlayer(ctx context.Context, playerID int64) (int64, error)

	// GetStats aggregates a player's retained records
	GetStats(ctx context.Context, playerID int64) (*models.BetStats, error)
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByPlayer returns balance history for a player, newest first
	GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*models.BalanceHistory, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes queued events
	Commit() error

	// Rollback rolls back the transaction and drops queued events
	Rollback() error

	// Repository getters
	PlayerRepository() PlayerRepository
	GameStateRepository() GameStateRepository
	BetRepository() BetRepository
	BalanceHistoryRepository() BalanceHistoryRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// GameStateStore persists the per-player game state. A missing or unreadable
// record is never an error: it loads as the default state.
type GameStateStore interface {
	// Load returns the stored state or the default
	Load(ctx context.Context, playerID int64) (models.GameState, error)

	// Save overwrites the stored state in its own transaction. Rounds write
	// through the same encoding inside the round's transaction instead.
	Save(ctx context.Context, playerID int64, state models.GameState) error

	// Reset stores and returns the default state
	Reset(ctx context.Context, playerID int64) (models.GameState, error)
}

// RouletteService plays rounds and exposes the adaptive odds
type RouletteService interface {
	// PlayRound settles one wager for a player
	PlayRound(ctx context.Context, playerID int64, username string, bet int64) (*models.RoundResult, error)

	// CurrentOdds returns the odds the player would face next without changing anything
	CurrentOdds(ctx context.Context, playerID int64) (*models.OddsView, error)

	// ResetState puts the player's game state back to its defaults
	ResetState(ctx context.Context, playerID int64) (models.GameState, error)
}

// LedgerService manages player balances outside of rounds
type LedgerService interface {
	// Balance returns the player's balance, 0 for unknown players
	Balance(ctx context.Context, playerID int64) (int64, error)

	// Deposit credits a positive amount
	Deposit(ctx context.Context, playerID int64, username string, amount int64) (*models.LedgerResult, error)

	// Withdraw debits a positive amount without letting the balance go negative
	Withdraw(ctx context.Context, playerID int64, username string, amount int64) (*models.LedgerResult, error)
}

// HistoryService reads and clears the bet history
type HistoryService interface {
	// Recent returns up to limit records, newest first
	Recent(ctx context.Context, playerID int64, limit int) ([]*models.BetRecord, error)

	// Clear removes the player's bet history and returns how many records were deleted
	Clear(ctx context.Context, playerID int64) (int64, error)

	// Stats aggregates the player's bet history
	Stats(ctx context.Context, playerID int64) (*models.BetStats, error)
}
