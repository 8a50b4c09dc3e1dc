// Package locks serializes draw creation per event.
package locks

import (
	"context"
	"errors"
)

// ErrLocked is returned when another holder owns the event lock and the locker does not wait
var ErrLocked = errors.New("event is locked")

// EventLocker grants exclusive access to one event id.
// The returned unlock func must be called exactly once.
type EventLocker interface {
	Lock(ctx context.Context, eventID string) (unlock func(), err error)
}

// NoopLocker never blocks. Concurrent draws of one event may then overlap.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
