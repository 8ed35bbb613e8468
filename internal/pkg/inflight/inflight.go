// Package inflight allows one outstanding mutation per control key.
package inflight

import (
	"errors"
	"sync"
)

var ErrMutationInFlight = errors.New("a previous request for this action is still in progress")

// Control keys
const KeyCreate = "create"

func MarkKey(employeeID string) string   { return "mark:" + employeeID }
func DeleteKey(employeeID string) string { return "delete:" + employeeID }

type Guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func New() *Guard {
	return &Guard{busy: make(map[string]struct{})}
}

// Acquire claims key. It fails fast with ErrMutationInFlight while another
// holder has not released it.
func (g *Guard) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[key]; ok {
		return nil, ErrMutationInFlight
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, nil
}

// Do runs fn while holding key.
func (g *Guard) Do(key string, fn func() error) error {
	release, err := g.Acquire(key)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.busy[key]
	return ok
}
