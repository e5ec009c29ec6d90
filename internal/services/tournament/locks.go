package tournament

import (
	"sync"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/model"
)

// keyedMutex serialises writers per tournament
type keyedMutex struct {
	mu    sync.Mutex
	locks map[model.TournamentID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[model.TournamentID]*sync.Mutex)}
}

// Lock blocks until the tournament is free and returns the unlock func
func (k *keyedMutex) Lock(id model.TournamentID) func() {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &sync.Mutex{}
		k.locks[id] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
