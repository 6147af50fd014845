package engine

import (
	"math/rand/v2"

	"roulette/models"
)

const (
	// SliceCount is the number of wheel slices; even slices are WIN, odd are LOSE
	SliceCount = 8
	// fullSpins is how many complete turns the wheel makes before stopping
	fullSpins = 4
)

// SliceOutcome returns the outcome painted on slice i
func SliceOutcome(i int) models.Outcome {
	if i%2 == 0 {
		return models.OutcomeWin
	}
	return models.OutcomeLose
}

// WheelStopFor picks a slice showing outcome using the draw r in [0, 1) and
// returns the rotation, in degrees, that lands the pointer on its center.
func WheelStopFor(outcome models.Outcome, r float64) models.WheelStop {
	candidates := make([]int, 0, SliceCount/2)
	for i := 0; i < SliceCount; i++ {
		if SliceOutcome(i) == outcome {
			candidates = append(candidates, i)
		}
	}

	pick := int(r * float64(len(candidates)))
	if pick < 0 {
		pick = 0
	}
	if pick >= len(candidates) {
		pick = len(candidates) - 1
	}
	idx := candidates[pick]

	anglePerSlice := 360.0 / SliceCount
	return models.WheelStop{
		SliceIndex: idx,
		Angle:      fullSpins*360 + float64(idx)*anglePerSlice + anglePerSlice/2,
	}
}

// SpinTarget chooses a wheel stop for a decided outcome. The choice is
// cosmetic and draws from its own generator so it never shifts the outcome
// sequence.
func SpinTarget(outcome models.Outcome) models.WheelStop {
	return WheelStopFor(outcome, rand.Float64())
}
