package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// sessionLocks serializes work per session id. Entries are dropped when the
// last holder unlocks.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) lock(id uuid.UUID) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = map[uuid.UUID]*sessionLock{}
	}
	e, ok := l.locks[id]
	if !ok {
		e = &sessionLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
