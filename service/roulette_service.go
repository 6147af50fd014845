package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"roulette/config"
	"roulette/engine"
	"roulette/events"
	"roulette/models"
)

type rouletteService struct {
	uowFactory UnitOfWorkFactory
	engine     *engine.Engine
	store      GameStateStore
	config     *config.Config
	guard      *roundGuard
}

// NewRouletteService creates a new roulette service
func NewRouletteService(uowFactory UnitOfWorkFactory, eng *engine.Engine, store GameStateStore, cfg *config.Config) RouletteService {
	return &rouletteService{
		uowFactory: uowFactory,
		engine:     eng,
		store:      store,
		config:     cfg,
		guard:      newRoundGuard(),
	}
}

// PlayRound validates the wager, runs one engine round against the stored
// state and settles the balance, all inside a single transaction.
func (s *rouletteService) PlayRound(ctx context.Context, playerID int64, username string, bet int64) (*models.RoundResult, error) {
	if bet <= 0 {
		return nil, fmt.Errorf("%w: bet must be positive, got %d", ErrInvalidAmount, bet)
	}
	if s.config.MaxBet > 0 && bet > s.config.MaxBet {
		return nil, fmt.Errorf("%w: bet of %d exceeds the limit of %d", ErrInvalidAmount, bet, s.config.MaxBet)
	}
	if bet > math.MaxInt64/s.config.PayoutMultiplier {
		return nil, fmt.Errorf("%w: bet of %d is too large to pay out", ErrInvalidAmount, bet)
	}

	release, ok := s.guard.acquire(playerID)
	if !ok {
		return nil, ErrRoundInProgress
	}
	defer release()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	player, err := getOrCreatePlayer(ctx, uow, playerID, username, s.config.StartingBalance)
	if err != nil {
		return nil, err
	}
	if bet > player.Balance {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, player.Balance, bet)
	}
	// Refused before the engine draws, the game state stays untouched
	if _, maxProfit := settle(bet, models.OutcomeWin, s.config.PayoutMultiplier); !fitsBalance(player.Balance, maxProfit) {
		return nil, fmt.Errorf("%w: a win of %d would overflow the balance of %d", ErrInvalidAmount, maxProfit, player.Balance)
	}

	state, err := loadGameState(ctx, uow.GameStateRepository(), playerID)
	if err != nil {
		return nil, err
	}

	round := s.engine.PlayRound(state)

	if err := saveGameState(ctx, uow.GameStateRepository(), playerID, round.State); err != nil {
		return nil, err
	}

	prize, profit := settle(bet, round.Outcome, s.config.PayoutMultiplier)
	balanceAfter := player.Balance + profit

	if err := uow.PlayerRepository().UpdateBalance(ctx, playerID, balanceAfter); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	record := &models.BetRecord{
		PlayerID:     playerID,
		Bet:          bet,
		Outcome:      round.Outcome,
		Prize:        prize,
		BalanceAfter: balanceAfter,
		Profit:       profit,
	}
	if err := uow.BetRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create bet record: %w", err)
	}
	if _, err := uow.BetRepository().Prune(ctx, playerID, s.config.HistoryLimit); err != nil {
		return nil, fmt.Errorf("failed to prune bet history: %w", err)
	}

	roundID := uuid.NewString()
	transactionType := models.TransactionTypeBetLoss
	if round.Outcome == models.OutcomeWin {
		transactionType = models.TransactionTypeBetWin
	}
	relatedType := models.RelatedTypeBet
	history := &models.BalanceHistory{
		PlayerID:        playerID,
		BalanceBefore:   player.Balance,
		BalanceAfter:    balanceAfter,
		ChangeAmount:    profit,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"round_id":        roundID,
			"bet":             bet,
			"prize":           prize,
			"win_probability": round.Odds.Win,
			"phase":           round.State.CurrentPhase,
		},
		RelatedID:   &record.ID,
		RelatedType: &relatedType,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	uow.EventBus().Publish(events.RoundPlayedEvent{
		RoundID:      roundID,
		PlayerID:     playerID,
		Bet:          bet,
		Outcome:      round.Outcome,
		Odds:         round.Odds,
		Prize:        prize,
		Profit:       profit,
		BalanceAfter: balanceAfter,
		State:        round.State,
	})
	if round.State.CurrentPhase != round.PreviousPhase {
		uow.EventBus().Publish(events.PhaseChangedEvent{
			PlayerID:   playerID,
			From:       round.PreviousPhase,
			To:         round.State.CurrentPhase,
			TotalGames: round.State.TotalGames,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"roundID":  roundID,
		"playerID": playerID,
		"outcome":  round.Outcome,
	}).Debug("Round settled")

	return &models.RoundResult{
		RoundID:       roundID,
		Outcome:       round.Outcome,
		Odds:          round.Odds,
		Bet:           bet,
		Prize:         prize,
		Profit:        profit,
		BalanceBefore: player.Balance,
		BalanceAfter:  balanceAfter,
		State:         round.State,
		PreviousPhase: round.PreviousPhase,
		Wheel:         engine.SpinTarget(round.Outcome),
		Record:        record,
	}, nil
}

// CurrentOdds reports the odds for the next round. The streak correction is
// applied to a copy and nothing is written.
func (s *rouletteService) CurrentOdds(ctx context.Context, playerID int64) (*models.OddsView, error) {
	state, err := s.store.Load(ctx, playerID)
	if err != nil {
		return nil, err
	}

	view := s.engine.View(state)
	return &view, nil
}

// ResetState restores the default game state. It is refused while a round
// for the player is in flight so the round cannot overwrite the reset.
func (s *rouletteService) ResetState(ctx context.Context, playerID int64) (models.GameState, error) {
	release, ok := s.guard.acquire(playerID)
	if !ok {
		return models.GameState{}, ErrRoundInProgress
	}
	defer release()

	return s.store.Reset(ctx, playerID)
}

// settle returns the prize paid out and the net balance change of a round
func settle(bet int64, outcome models.Outcome, multiplier int64) (prize, profit int64) {
	if outcome == models.OutcomeWin {
		prize = bet * multiplier
		return prize, prize - bet
	}
	return 0, -bet
}
