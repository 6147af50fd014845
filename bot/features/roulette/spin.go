package roulette

import (
	"context"
	"sync"
	"time"
)

// spinTracker is the per-player "spinning" flag. It stays raised for the
// whole animation, not just the settlement.
type spinTracker struct {
	mu       sync.Mutex
	spinning map[int64]bool
}

func newSpinTracker() *spinTracker {
	return &spinTracker{spinning: make(map[int64]bool)}
}

// start raises the flag for playerID, or reports false if it is already up
func (t *spinTracker) start(playerID int64) (stop func(), ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.spinning[playerID] {
		return nil, false
	}
	t.spinning[playerID] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.spinning, playerID)
			t.mu.Unlock()
		})
	}, true
}

func (t *spinTracker) isSpinning(playerID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.spinning[playerID]
}

// waitForSpin blocks for the animation length or until ctx is done
func waitForSpin(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
