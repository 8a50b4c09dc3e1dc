package locks

import (
	"context"
	"sync"
)

// LocalLocker is an in-process keyed mutex. Waiters block until the holder
// releases or their context is done.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

type localEntry struct {
	sem  chan struct{}
	refs int
}

// NewLocalLocker creates a LocalLocker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: make(map[string]*localEntry)}
}

func (l *LocalLocker) Lock(ctx context.Context, eventID string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[eventID]
	if !ok {
		e = &localEntry{sem: make(chan struct{}, 1)}
		l.entries[eventID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(eventID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(eventID, e)
		})
	}, nil
}

func (l *LocalLocker) release(eventID string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, eventID)
	}
}

// held reports how many entries are tracked; used by tests
func (l *LocalLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
