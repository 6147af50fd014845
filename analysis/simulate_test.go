package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roulette/engine"
	"roulette/models"
)

func alwaysLose() engine.ProbabilityConfig {
	return engine.ProbabilityConfig{
		Initial:        models.Odds{Win: 0, Lose: 1},
		House:          models.Odds{Win: 0, Lose: 1},
		Threshold:      4,
		ResetThreshold: 15,
	}
}

func TestRun_AlwaysLose(t *testing.T) {
	report, err := Run(alwaysLose(), Options{Players: 3, Rounds: 40, Bet: 10, Multiplier: 2, Seed: 1}, nil)
	require.NoError(t, err)

	assert.Equal(t, 120, report.Rounds)
	assert.Equal(t, 0, report.Wins)
	assert.Equal(t, 0.0, report.WinRate)
	assert.Equal(t, 0.0, report.WinRateLow)
	assert.Equal(t, 0.0, report.RTP)
	assert.Equal(t, -400.0, report.PlayerNetMean)
	assert.Equal(t, 0.0, report.PlayerNetStdDev)
	assert.Equal(t, 1.0, report.PValue)

	// the streak hits 15 after round 15 and again after round 30
	assert.Equal(t, 6, report.StreakResets)
	assert.Equal(t, 15, report.LongestStreak)
	assert.Equal(t, 3*4, report.InitialOddsRounds)
	assert.Equal(t, 3*36, report.HouseOddsRounds)
}

func TestRun_AlwaysWin(t *testing.T) {
	cfg := engine.ProbabilityConfig{
		Initial:        models.Odds{Win: 1, Lose: 0},
		House:          models.Odds{Win: 1, Lose: 0},
		Threshold:      4,
		ResetThreshold: 15,
	}

	report, err := Run(cfg, Options{Players: 2, Rounds: 10, Bet: 5, Multiplier: 2, Seed: 1}, nil)
	require.NoError(t, err)

	assert.Equal(t, 20, report.Wins)
	assert.Equal(t, 2.0, report.RTP)
	assert.Equal(t, 1.0, report.WinRateHigh)
	assert.Equal(t, 0, report.StreakResets)
	assert.Equal(t, 0, report.LongestStreak)
}

func TestRun_DefaultTableMatchesAppliedOdds(t *testing.T) {
	var finished int
	report, err := Run(engine.DefaultProbabilityConfig(), Options{Players: 500, Rounds: 40, Bet: 1, Multiplier: 2, Seed: 42}, func() {
		finished++
	})
	require.NoError(t, err)

	assert.Equal(t, 500, finished)
	assert.Equal(t, 20000, report.Rounds)
	// 4 initial rounds at 0.60 then 36 house rounds at 0.25
	assert.InDelta(t, (4*0.60+36*0.25)/40, report.ExpectedWinRate, 1e-9)
	assert.InDelta(t, report.ExpectedWinRate, report.WinRate, 0.02)
	assert.LessOrEqual(t, report.WinRateLow, report.WinRate)
	assert.GreaterOrEqual(t, report.WinRateHigh, report.WinRate)
	assert.Less(t, report.RTP, 1.0, "the house phase dominates a 40-round session")
}

func TestRun_Deterministic(t *testing.T) {
	opts := Options{Players: 50, Rounds: 30, Bet: 1, Multiplier: 2, Seed: 7}

	first, err := Run(engine.DefaultProbabilityConfig(), opts, nil)
	require.NoError(t, err)
	second, err := Run(engine.DefaultProbabilityConfig(), opts, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_InvalidOptions(t *testing.T) {
	cfg := engine.DefaultProbabilityConfig()

	_, err := Run(cfg, Options{Players: 0, Rounds: 10, Bet: 1, Multiplier: 2}, nil)
	assert.Error(t, err)
	_, err = Run(cfg, Options{Players: 1, Rounds: 10, Bet: 0, Multiplier: 2}, nil)
	assert.Error(t, err)

	bad := cfg
	bad.Threshold = 0
	_, err = Run(bad, Options{Players: 1, Rounds: 10, Bet: 1, Multiplier: 2}, nil)
	assert.Error(t, err)
}

func TestClopperPearson(t *testing.T) {
	lo, hi := clopperPearson(50, 100, 0.05)
	assert.InDelta(t, 0.398, lo, 0.001)
	assert.InDelta(t, 0.602, hi, 0.001)
}
