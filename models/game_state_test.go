package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		state   GameState
		wantErr bool
	}{
		{"default", DefaultGameState(), false},
		{"house with streak", GameState{TotalGames: 10, ConsecutiveLosses: 10, CurrentPhase: PhaseHouse}, false},
		{"negative total", GameState{TotalGames: -1, CurrentPhase: PhaseInitial}, true},
		{"negative streak", GameState{TotalGames: 1, ConsecutiveLosses: -1, CurrentPhase: PhaseInitial}, true},
		{"streak above total", GameState{TotalGames: 1, ConsecutiveLosses: 2, CurrentPhase: PhaseInitial}, true},
		{"unknown phase", GameState{CurrentPhase: "bonus"}, true},
		{"empty phase", GameState{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeGameState(t *testing.T) {
	state, err := DecodeGameState([]byte(`{"totalGames":20,"consecutiveLosses":14,"currentPhase":"house"}`))
	require.NoError(t, err)
	assert.Equal(t, GameState{TotalGames: 20, ConsecutiveLosses: 14, CurrentPhase: PhaseHouse}, state)

	_, err = DecodeGameState([]byte(`{"totalGames":`))
	assert.Error(t, err)

	_, err = DecodeGameState([]byte(`{"totalGames":1,"consecutiveLosses":0,"currentPhase":"jackpot"}`))
	assert.Error(t, err)
}

func TestEncodeGameState(t *testing.T) {
	payload, err := EncodeGameState(GameState{TotalGames: 5, ConsecutiveLosses: 1, CurrentPhase: PhaseHouse})
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalGames":5,"consecutiveLosses":1,"currentPhase":"house"}`, string(payload))

	_, err = EncodeGameState(GameState{TotalGames: 1, ConsecutiveLosses: 3, CurrentPhase: PhaseHouse})
	assert.Error(t, err)
}
