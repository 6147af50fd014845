package service

import "sync"

// roundGuard allows at most one in-flight round per player within this
// process. The player row lock covers other processes.
type roundGuard struct {
	mu     sync.Mutex
	active map[int64]struct{}
}

func newRoundGuard() *roundGuard {
	return &roundGuard{active: make(map[int64]struct{})}
}

// acquire marks playerID busy. The returned release must be called once the
// round is settled.
func (g *roundGuard) acquire(playerID int64) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[playerID]; busy {
		return nil, false
	}
	g.active[playerID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, playerID)
			g.mu.Unlock()
		})
	}, true
}
