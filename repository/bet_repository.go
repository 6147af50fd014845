package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"roulette/database"
	"roulette/models"
)

const betRecordsTable = "bet_records"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// BetRepository implements the BetRepository interface
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a new bet repository with a transaction
func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

// Create appends a record and fills in its ID and timestamp
func (r *BetRepository) Create(ctx context.Context, record *models.BetRecord) error {
	query, args, err := psql.Insert(betRecordsTable).
		Columns("player_id", "bet", "outcome", "prize", "balance_after", "profit").
		Values(record.PlayerID, record.Bet, record.Outcome, record.Prize, record.BalanceAfter, record.Profit).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.q.QueryRow(ctx, query, args...).Scan(&record.ID, &record.CreatedAt); err != nil {
		return fmt.Errorf("failed to create bet record for player %d: %w", record.PlayerID, err)
	}
	return nil
}

// Prune keeps only the newest keep records of a player
func (r *BetRepository) Prune(ctx context.Context, playerID int64, keep int) (int64, error) {
	query, args, err := psql.Delete(betRecordsTable).
		Where(sq.Eq{"player_id": playerID}).
		Where("id NOT IN (SELECT id FROM bet_records WHERE player_id = ? ORDER BY id DESC LIMIT ?)", playerID, keep).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build prune query: %w", err)
	}

	result, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune bet records for player %d: %w", playerID, err)
	}
	return result.RowsAffected(), nil
}

// GetByPlayer returns up to limit records, newest first
func (r *BetRepository) GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*models.BetRecord, error) {
	query, args, err := psql.Select("id", "player_id", "bet", "outcome", "prize", "balance_after", "profit", "created_at").
		From(betRecordsTable).
		Where(sq.Eq{"player_id": playerID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet records for player %d: %w", playerID, err)
	}
	defer rows.Close()

	records := make([]*models.BetRecord, 0, limit)
	for rows.Next() {
		var record models.BetRecord
		if err := rows.Scan(
			&record.ID,
			&record.PlayerID,
			&record.Bet,
			&record.Outcome,
			&record.Prize,
			&record.BalanceAfter,
			&record.Profit,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bet record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bet records: %w", err)
	}

	return records, nil
}

// DeleteByPlayer removes a player's whole history
func (r *BetRepository) DeleteByPlayer(ctx context.Context, playerID int64) (int64, error) {
	query, args, err := psql.Delete(betRecordsTable).
		Where(sq.Eq{"player_id": playerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bet records for player %d: %w", playerID, err)
	}
	return result.RowsAffected(), nil
}

// GetStats aggregates the retained records of a player
func (r *BetRepository) GetStats(ctx context.Context, playerID int64) (*models.BetStats, error) {
	query, args, err := psql.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE outcome = 'WIN')",
		"COALESCE(SUM(bet), 0)::BIGINT",
		"COALESCE(SUM(prize), 0)::BIGINT",
		"COALESCE(SUM(profit), 0)::BIGINT",
		"COALESCE(MAX(profit) FILTER (WHERE outcome = 'WIN'), 0)",
		"COALESCE(MAX(bet) FILTER (WHERE outcome = 'LOSE'), 0)",
	).
		From(betRecordsTable).
		Where(sq.Eq{"player_id": playerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build stats query: %w", err)
	}

	var stats models.BetStats
	err = r.q.QueryRow(ctx, query, args...).Scan(
		&stats.TotalBets,
		&stats.TotalWins,
		&stats.TotalWagered,
		&stats.TotalPrizes,
		&stats.NetProfit,
		&stats.BiggestWin,
		&stats.BiggestLoss,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet stats for player %d: %w", playerID, err)
	}

	stats.TotalLosses = stats.TotalBets - stats.TotalWins
	if stats.TotalBets > 0 {
		stats.WinPercentage = float64(stats.TotalWins) / float64(stats.TotalBets) * 100
	}

	return &stats, nil
}
