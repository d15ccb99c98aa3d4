package sync

import (
	"errors"
	"sync"
)

var ErrAlreadyRunning = errors.New("sync of this type is already running")

// Guard serializes sync runs per sync type. Scheduled ticks and manual
// triggers share one Guard, so a slow run is skipped over rather than
// stacked on.
type Guard struct {
	mu      sync.Mutex
	running map[string]bool
}

func NewGuard() *Guard {
	return &Guard{
		running: make(map[string]bool),
	}
}

// TryRun executes fn unless a run with the same name is in flight, in
// which case it returns ErrAlreadyRunning without blocking.
func (g *Guard) TryRun(name string, fn func() error) error {
	g.mu.Lock()
	if g.running[name] {
		g.mu.Unlock()
		return ErrAlreadyRunning
	}
	g.running[name] = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.running, name)
		g.mu.Unlock()
	}()

	return fn()
}
