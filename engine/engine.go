// Package engine decides roulette outcomes from a player's game state.
//
// Probabilities are derived from the round counter: the initial table applies
// while TotalGames < Threshold and the house table afterwards. The phase label
// latches to house once the threshold is reached. A losing streak of
// ResetThreshold or more forces the label back to initial and clears the
// streak, but only when the odds are next queried, so the reset shows up one
// round after the streak reaches the threshold.
package engine

import (
	"fmt"

	"roulette/models"
)

// CurrentProbability applies the losing-streak correction to state and
// returns the odds for the next draw.
func CurrentProbability(cfg ProbabilityConfig, state *models.GameState) models.Odds {
	if state.ConsecutiveLosses >= cfg.ResetThreshold {
		state.CurrentPhase = models.PhaseInitial
		state.ConsecutiveLosses = 0
	}

	if state.TotalGames < cfg.Threshold {
		return cfg.Initial
	}
	return cfg.House
}

// Sample maps a uniform draw r in [0, 1) to an outcome
func Sample(odds models.Odds, r float64) models.Outcome {
	if r < odds.Win {
		return models.OutcomeWin
	}
	return models.OutcomeLose
}

// Advance records a completed round in state
func Advance(cfg ProbabilityConfig, state *models.GameState, outcome models.Outcome) {
	state.TotalGames++
	if outcome == models.OutcomeLose {
		state.ConsecutiveLosses++
	} else {
		state.ConsecutiveLosses = 0
	}

	if state.TotalGames >= cfg.Threshold {
		state.CurrentPhase = models.PhaseHouse
	}
}

// Round is the result of a single PlayRound call
type Round struct {
	Outcome       models.Outcome
	Odds          models.Odds
	State         models.GameState
	PreviousPhase models.Phase
}

// Engine samples outcomes with a fixed probability table and random source
type Engine struct {
	cfg ProbabilityConfig
	rng RandomSource
}

// New creates an engine. A nil source falls back to math/rand.
func New(cfg ProbabilityConfig, rng RandomSource) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid probability config: %w", err)
	}
	if rng == nil {
		rng = NewMathRandSource()
	}
	return &Engine{cfg: cfg, rng: rng}, nil
}

// Config returns a copy of the engine's probability table
func (e *Engine) Config() ProbabilityConfig {
	return e.cfg
}

// PlayRound queries the odds (applying the streak correction), draws an
// outcome and advances the state. It is the only way a round should be played.
func (e *Engine) PlayRound(state models.GameState) Round {
	previous := state.CurrentPhase
	odds := CurrentProbability(e.cfg, &state)
	outcome := Sample(odds, e.rng.Float64())
	Advance(e.cfg, &state, outcome)

	return Round{
		Outcome:       outcome,
		Odds:          odds,
		State:         state,
		PreviousPhase: previous,
	}
}

// View returns the odds a player would face next without touching the stored
// state. The streak correction is applied to a copy.
func (e *Engine) View(state models.GameState) models.OddsView {
	odds := CurrentProbability(e.cfg, &state)
	return models.OddsView{
		Odds:              odds,
		Phase:             state.CurrentPhase,
		TotalGames:        state.TotalGames,
		ConsecutiveLosses: state.ConsecutiveLosses,
		Threshold:         e.cfg.Threshold,
		ResetThreshold:    e.cfg.ResetThreshold,
	}
}
