package service

import (
	"context"
	"fmt"

	"roulette/config"
	"roulette/models"
)

type historyService struct {
	uowFactory UnitOfWorkFactory
	config     *config.Config
}

// NewHistoryService creates a new history service
func NewHistoryService(uowFactory UnitOfWorkFactory, cfg *config.Config) HistoryService {
	return &historyService{
		uowFactory: uowFactory,
		config:     cfg,
	}
}

// Recent returns the newest records. A limit outside (0, HistoryLimit] is
// clamped to HistoryLimit.
func (s *historyService) Recent(ctx context.Context, playerID int64, limit int) ([]*models.BetRecord, error) {
	if limit <= 0 || limit > s.config.HistoryLimit {
		limit = s.config.HistoryLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	records, err := uow.BetRepository().GetByPlayer(ctx, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet history: %w", err)
	}
	return records, nil
}

func (s *historyService) Clear(ctx context.Context, playerID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	deleted, err := uow.BetRepository().DeleteByPlayer(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear bet history: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deleted, nil
}

func (s *historyService) Stats(ctx context.Context, playerID int64) (*models.BetStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	stats, err := uow.BetRepository().GetStats(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet stats: %w", err)
	}
	return stats, nil
}
