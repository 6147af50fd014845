//go:build analysis

// Probability analysis tool for the roulette outcome engine.
// Run with: go run -tags analysis ./scripts -players 10000 -rounds 50
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"

	"roulette/analysis"
	"roulette/config"
	"roulette/engine"
)

func main() {
	players := flag.Int("players", 10000, "number of simulated players")
	rounds := flag.Int("rounds", 50, "rounds per player")
	bet := flag.Int64("bet", 100, "bet per round")
	multiplier := flag.Int64("multiplier", 2, "prize multiplier on a win")
	seed := flag.Uint64("seed", 1, "random seed")
	tablePath := flag.String("config", "", "probability table YAML (embedded default when empty)")
	quiet := flag.Bool("quiet", false, "hide the progress bar")
	flag.Parse()

	cfg, err := config.LoadProbabilityConfig(*tablePath)
	if err != nil {
		log.Fatalf("Failed to load probability table: %v", err)
	}

	bar := pb.StartNew(*players)
	if *quiet {
		bar.SetWriter(io.Discard)
	}

	report, err := analysis.Run(cfg, analysis.Options{
		Players:    *players,
		Rounds:     *rounds,
		Bet:        *bet,
		Multiplier: *multiplier,
		Seed:       *seed,
	}, func() { bar.Increment() })
	bar.Finish()
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	printReport(os.Stdout, cfg, *players, *rounds, report)
}

func printReport(w io.Writer, cfg engine.ProbabilityConfig, players, rounds int, r *analysis.Report) {
	fmt.Fprintln(w, "=== Roulette Probability Analysis ===")
	fmt.Fprintf(w, "Table: initial %.2f/%.2f, house %.2f/%.2f, threshold %d, reset threshold %d\n",
		cfg.Initial.Win, cfg.Initial.Lose, cfg.House.Win, cfg.House.Lose, cfg.Threshold, cfg.ResetThreshold)
	fmt.Fprintf(w, "Players: %d | Rounds each: %d | Total rounds: %d\n\n", players, rounds, r.Rounds)

	fmt.Fprintf(w, "Win rate:          %.4f  (95%% CI %.4f - %.4f)\n", r.WinRate, r.WinRateLow, r.WinRateHigh)
	fmt.Fprintf(w, "Applied odds:      %.4f\n", r.ExpectedWinRate)
	fmt.Fprintf(w, "Chi-squared:       %.3f  (p = %.4f)\n", r.ChiSquared, r.PValue)
	fmt.Fprintf(w, "Return to player:  %.2f%%\n", r.RTP*100)
	fmt.Fprintf(w, "Net per player:    %.1f ± %.1f\n\n", r.PlayerNetMean, r.PlayerNetStdDev)

	fmt.Fprintf(w, "Rounds on initial odds: %d\n", r.InitialOddsRounds)
	fmt.Fprintf(w, "Rounds on house odds:   %d\n", r.HouseOddsRounds)
	fmt.Fprintf(w, "Streak resets:          %d\n", r.StreakResets)
	fmt.Fprintf(w, "Longest losing streak:  %d\n", r.LongestStreak)

	if r.PValue < 0.01 {
		fmt.Fprintln(w, "\n✗ Observed wins deviate from the applied odds")
	} else {
		fmt.Fprintln(w, "\n✓ Observed wins are consistent with the applied odds")
	}
}
