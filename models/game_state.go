package models

import (
	"encoding/json"
	"fmt"
)

// Phase names the probability table a player is currently on
type Phase string

const (
	PhaseInitial Phase = "initial" // favors the player
	PhaseHouse   Phase = "house"   // favors the house
)

// Valid reports whether p is a known phase
func (p Phase) Valid() bool {
	return p == PhaseInitial || p == PhaseHouse
}

// Outcome is the result of a single round
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLose Outcome = "LOSE"
)

// Odds is a win/lose probability pair
type Odds struct {
	Win  float64 `json:"win" yaml:"win"`
	Lose float64 `json:"lose" yaml:"lose"`
}

// GameState is the durable per-player record read and advanced once per round.
// The JSON layout is the persisted payload format.
type GameState struct {
	TotalGames        int   `json:"totalGames"`
	ConsecutiveLosses int   `json:"consecutiveLosses"`
	CurrentPhase      Phase `json:"currentPhase"`
}

// DefaultGameState returns the first-run state {0, 0, initial}
func DefaultGameState() GameState {
	return GameState{
		TotalGames:        0,
		ConsecutiveLosses: 0,
		CurrentPhase:      PhaseInitial,
	}
}

// Validate checks the counter invariants of a state
func (s GameState) Validate() error {
	if s.TotalGames < 0 {
		return fmt.Errorf("total games must be non-negative, got %d", s.TotalGames)
	}
	if s.ConsecutiveLosses < 0 {
		return fmt.Errorf("consecutive losses must be non-negative, got %d", s.ConsecutiveLosses)
	}
	if s.ConsecutiveLosses > s.TotalGames {
		return fmt.Errorf("consecutive losses (%d) exceed total games (%d)", s.ConsecutiveLosses, s.TotalGames)
	}
	if !s.CurrentPhase.Valid() {
		return fmt.Errorf("unknown phase %q", s.CurrentPhase)
	}
	return nil
}

// EncodeGameState serializes a state into its persisted payload. States
// that break the invariants are refused.
func EncodeGameState(s GameState) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to encode game state: %w", err)
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game state: %w", err)
	}
	return payload, nil
}

// DecodeGameState parses a persisted payload. A payload that does not parse
// or that violates the state invariants is reported as an error; callers
// decide whether that means "absent".
func DecodeGameState(payload []byte) (GameState, error) {
	var s GameState
	if err := json.Unmarshal(payload, &s); err != nil {
		return GameState{}, fmt.Errorf("failed to unmarshal game state: %w", err)
	}
	if err := s.Validate(); err != nil {
		return GameState{}, fmt.Errorf("invalid game state: %w", err)
	}
	return s, nil
}

// OddsView is a read-only snapshot of a player's odds for display
type OddsView struct {
	Odds              Odds  `json:"odds"`
	Phase             Phase `json:"phase"`
	TotalGames        int   `json:"totalGames"`
	ConsecutiveLosses int   `json:"consecutiveLosses"`
	Threshold         int   `json:"threshold"`
	ResetThreshold    int   `json:"resetThreshold"`
}
