package usecase

import (
	"context"
	"sync"

	"certsale/internal/core/domain"
)

// keyedMutex serialises operations per campaign. Entries are dropped once
// nobody holds or waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[domain.Identity]*refMutex
}

type refMutex struct {
	held chan struct{}
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[domain.Identity]*refMutex)}
}

// Lock blocks until the campaign is free or ctx is done, and returns the
// unlock function.
func (k *keyedMutex) Lock(ctx context.Context, id domain.Identity) (func(), error) {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{held: make(chan struct{}, 1)}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	select {
	case m.held <- struct{}{}:
		return func() {
			<-m.held
			k.release(id, m)
		}, nil
	case <-ctx.Done():
		k.release(id, m)
		return nil, ctx.Err()
	}
}

func (k *keyedMutex) release(id domain.Identity, m *refMutex) {
	k.mu.Lock()
	defer k.mu.Unlock()
	m.refs--
	if m.refs == 0 {
		delete(k.locks, id)
	}
}
