package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"roulette/events"
	"roulette/models"
)

type gameStateStore struct {
	uowFactory UnitOfWorkFactory
}

// NewGameStateStore creates a store that opens its own unit of work per call
func NewGameStateStore(uowFactory UnitOfWorkFactory) GameStateStore {
	return &gameStateStore{uowFactory: uowFactory}
}

func (s *gameStateStore) Load(ctx context.Context, playerID int64) (models.GameState, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return models.GameState{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return loadGameState(ctx, uow.GameStateRepository(), playerID)
}

func (s *gameStateStore) Save(ctx context.Context, playerID int64, state models.GameState) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := saveGameState(ctx, uow.GameStateRepository(), playerID, state); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *gameStateStore) Reset(ctx context.Context, playerID int64) (models.GameState, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return models.GameState{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	state := models.DefaultGameState()
	if err := saveGameState(ctx, uow.GameStateRepository(), playerID, state); err != nil {
		return models.GameState{}, err
	}
	uow.EventBus().Publish(events.GameStateResetEvent{PlayerID: playerID})

	if err := uow.Commit(); err != nil {
		return models.GameState{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return state, nil
}

func loadGameState(ctx context.Context, repo GameStateRepository, playerID int64) (models.GameState, error) {
	payload, err := repo.GetPayload(ctx, playerID)
	if err != nil {
		return models.GameState{}, fmt.Errorf("failed to load game state: %w", err)
	}
	if payload == nil {
		return models.DefaultGameState(), nil
	}

	state, err := models.DecodeGameState(payload)
	if err != nil {
		log.WithFields(log.Fields{
			"playerID": playerID,
			"error":    err,
		}).Warn("Discarding unreadable game state, starting from defaults")
		return models.DefaultGameState(), nil
	}
	return state, nil
}

func saveGameState(ctx context.Context, repo GameStateRepository, playerID int64, state models.GameState) error {
	payload, err := models.EncodeGameState(state)
	if err != nil {
		return err
	}
	if err := repo.SavePayload(ctx, playerID, payload); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}
	return nil
}
