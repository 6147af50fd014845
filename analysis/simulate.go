// Package analysis runs Monte Carlo simulations of the outcome engine and
// summarises how the adaptive odds behave over many players.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"roulette/engine"
	"roulette/models"
)

// Options controls a simulation run
type Options struct {
	Players    int
	Rounds     int // rounds per player, each starting from the default state
	Bet        int64
	Multiplier int64
	Seed       uint64
}

// Report summarises a simulation run
type Report struct {
	Rounds int
	Wins   int

	// WinRate is observed wins over rounds; the interval is the 95%
	// Clopper-Pearson interval around it.
	WinRate     float64
	WinRateLow  float64
	WinRateHigh float64

	// ExpectedWinRate averages the win probability actually applied per round
	ExpectedWinRate float64
	ChiSquared      float64
	PValue          float64

	// RTP is total prizes over total wagered
	RTP float64

	PlayerNetMean   float64
	PlayerNetStdDev float64

	InitialOddsRounds int
	HouseOddsRounds   int
	StreakResets      int
	LongestStreak     int
}

// Run simulates opts.Players independent players for opts.Rounds rounds each.
// progress, when non-nil, is called once per finished player.
func Run(cfg engine.ProbabilityConfig, opts Options, progress func()) (*Report, error) {
	if opts.Players <= 0 || opts.Rounds <= 0 {
		return nil, fmt.Errorf("players and rounds must be positive, got %d and %d", opts.Players, opts.Rounds)
	}
	if opts.Bet <= 0 || opts.Multiplier <= 0 {
		return nil, fmt.Errorf("bet and multiplier must be positive, got %d and %d", opts.Bet, opts.Multiplier)
	}

	eng, err := engine.New(cfg, engine.NewSeededSource(opts.Seed))
	if err != nil {
		return nil, err
	}

	report := &Report{}
	nets := make([]float64, 0, opts.Players)
	var expectedWins float64
	var wagered, prizes int64

	for p := 0; p < opts.Players; p++ {
		state := models.DefaultGameState()
		var net int64

		for r := 0; r < opts.Rounds; r++ {
			if state.ConsecutiveLosses >= cfg.ResetThreshold {
				report.StreakResets++
			}

			round := eng.PlayRound(state)
			state = round.State

			report.Rounds++
			expectedWins += round.Odds.Win
			// odds follow the game count before this round
			if state.TotalGames <= cfg.Threshold {
				report.InitialOddsRounds++
			} else {
				report.HouseOddsRounds++
			}
			if state.ConsecutiveLosses > report.LongestStreak {
				report.LongestStreak = state.ConsecutiveLosses
			}

			wagered += opts.Bet
			if round.Outcome == models.OutcomeWin {
				report.Wins++
				prize := opts.Bet * opts.Multiplier
				prizes += prize
				net += prize - opts.Bet
			} else {
				net -= opts.Bet
			}
		}

		nets = append(nets, float64(net))
		if progress != nil {
			progress()
		}
	}

	n := float64(report.Rounds)
	report.WinRate = float64(report.Wins) / n
	report.WinRateLow, report.WinRateHigh = clopperPearson(report.Wins, report.Rounds, 0.05)
	report.ExpectedWinRate = expectedWins / n
	report.ChiSquared, report.PValue = goodnessOfFit(float64(report.Wins), expectedWins, n)
	report.RTP = float64(prizes) / float64(wagered)

	if len(nets) > 1 {
		report.PlayerNetMean, report.PlayerNetStdDev = stat.MeanStdDev(nets, nil)
	} else {
		report.PlayerNetMean = nets[0]
	}

	return report, nil
}

// clopperPearson returns the exact binomial confidence interval for k
// successes out of n at significance alpha.
func clopperPearson(k, n int, alpha float64) (lo, hi float64) {
	lo, hi = 0, 1
	if k > 0 {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		lo = b.Quantile(alpha / 2)
	}
	if k < n {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		hi = b.Quantile(1 - alpha/2)
	}
	return lo, hi
}

// goodnessOfFit compares observed wins with the wins the applied odds
// predict. With a degenerate expectation (no wins or no losses possible)
// there is nothing to test and the p-value is 1.
func goodnessOfFit(observed, expected, n float64) (chi2, pValue float64) {
	if expected <= 0 || expected >= n {
		return 0, 1
	}
	expectedLosses := n - expected
	chi2 = math.Pow(observed-expected, 2)/expected +
		math.Pow((n-observed)-expectedLosses, 2)/expectedLosses
	pValue = 1 - distuv.ChiSquared{K: 1}.CDF(chi2)
	return chi2, pValue
}
