package engine

import (
	"fmt"
	"math"

	"roulette/models"
)

const oddsTolerance = 1e-9

// ProbabilityConfig is the process-wide probability table. Treat it as a value:
// the engine keeps its own copy.
type ProbabilityConfig struct {
	Initial        models.Odds `yaml:"initial"`
	House          models.Odds `yaml:"house"`
	Threshold      int         `yaml:"threshold"`      // rounds before the house phase
	ResetThreshold int         `yaml:"resetThreshold"` // losing streak that forces the initial phase
}

// DefaultProbabilityConfig returns the stock table
func DefaultProbabilityConfig() ProbabilityConfig {
	return ProbabilityConfig{
		Initial:        models.Odds{Win: 0.60, Lose: 0.40},
		House:          models.Odds{Win: 0.25, Lose: 0.75},
		Threshold:      4,
		ResetThreshold: 15,
	}
}

// Validate checks that each phase is a proper distribution and the thresholds are usable
func (c ProbabilityConfig) Validate() error {
	if err := validateOdds("initial", c.Initial); err != nil {
		return err
	}
	if err := validateOdds("house", c.House); err != nil {
		return err
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be positive, got %d", c.Threshold)
	}
	if c.ResetThreshold <= 0 {
		return fmt.Errorf("reset threshold must be positive, got %d", c.ResetThreshold)
	}
	return nil
}

func validateOdds(name string, o models.Odds) error {
	if o.Win < 0 || o.Win > 1 {
		return fmt.Errorf("%s win probability must be within [0, 1], got %v", name, o.Win)
	}
	if o.Lose < 0 || o.Lose > 1 {
		return fmt.Errorf("%s lose probability must be within [0, 1], got %v", name, o.Lose)
	}
	if math.Abs(o.Win+o.Lose-1) > oddsTolerance {
		return fmt.Errorf("%s probabilities must sum to 1, got %v", name, o.Win+o.Lose)
	}
	return nil
}
