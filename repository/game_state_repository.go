package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roulette/database"
)

// GameStateRepository stores one JSON payload per player
type GameStateRepository struct {
	q queryable
}

// NewGameStateRepository creates a new game state repository
func NewGameStateRepository(db *database.DB) *GameStateRepository {
	return &GameStateRepository{q: db.Pool}
}

// newGameStateRepositoryWithTx creates a new game state repository with a transaction
func newGameStateRepositoryWithTx(tx queryable) *GameStateRepository {
	return &GameStateRepository{q: tx}
}

// GetPayload returns the stored payload or nil if the player has none
func (r *GameStateRepository) GetPayload(ctx context.Context, playerID int64) ([]byte, error) {
	var payload string
	err := r.q.QueryRow(ctx, `
		SELECT payload
		FROM game_states
		WHERE player_id = $1
	`, playerID).Scan(&payload)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game state for player %d: %w", playerID, err)
	}

	return []byte(payload), nil
}

// SavePayload overwrites the stored payload; the last write wins
func (r *GameStateRepository) SavePayload(ctx context.Context, playerID int64, payload []byte) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO game_states (player_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (player_id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
	`, playerID, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save game state for player %d: %w", playerID, err)
	}
	return nil
}
