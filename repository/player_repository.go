package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roulette/database"
	"roulette/models"
	"roulette/service"
)

// PlayerRepository implements the PlayerRepository interface
type PlayerRepository struct {
	q queryable
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{q: db.Pool}
}

// newPlayerRepositoryWithTx creates a new player repository with a transaction
func newPlayerRepositoryWithTx(tx queryable) *PlayerRepository {
	return &PlayerRepository{q: tx}
}

// GetByID retrieves a player by ID
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (*models.Player, error) {
	return r.get(ctx, `
		SELECT id, username, balance, created_at, updated_at
		FROM players
		WHERE id = $1
	`, playerID)
}

// GetByIDForUpdate retrieves a player and holds a row lock until the transaction ends
func (r *PlayerRepository) GetByIDForUpdate(ctx context.Context, playerID int64) (*models.Player, error) {
	return r.get(ctx, `
		SELECT id, username, balance, created_at, updated_at
		FROM players
		WHERE id = $1
		FOR UPDATE
	`, playerID)
}

func (r *PlayerRepository) get(ctx context.Context, query string, playerID int64) (*models.Player, error) {
	var player models.Player
	err := r.q.QueryRow(ctx, query, playerID).Scan(
		&player.ID,
		&player.Username,
		&player.Balance,
		&player.CreatedAt,
		&player.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", playerID, err)
	}

	return &player, nil
}

// Create inserts a player. When a concurrent transaction already created the
// same player it returns nil without error.
func (r *PlayerRepository) Create(ctx context.Context, playerID int64, username string, initialBalance int64) (*models.Player, error) {
	query := `
		INSERT INTO players (id, username, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
		RETURNING id, username, balance, created_at, updated_at
	`

	var player models.Player
	err := r.q.QueryRow(ctx, query, playerID, username, initialBalance).Scan(
		&player.ID,
		&player.Username,
		&player.Balance,
		&player.CreatedAt,
		&player.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create player %d: %w", playerID, err)
	}

	return &player, nil
}

// UpdateBalance sets a player's balance
func (r *PlayerRepository) UpdateBalance(ctx context.Context, playerID int64, newBalance int64) error {
	result, err := r.q.Exec(ctx, `
		UPDATE players
		SET balance = $1
		WHERE id = $2
	`, newBalance, playerID)
	if err != nil {
		return fmt.Errorf("failed to update balance for player %d: %w", playerID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to update balance for player %d: %w", playerID, service.ErrPlayerNotFound)
	}

	return nil
}
