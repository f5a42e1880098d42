// Package pubsub implements the in-process change notification bus. Writers
// publish after mutating a persisted collection; dependent views re-read
// whatever state they need, so no payload travels with the signal.
package pubsub

import (
	"sync"

	"github.com/google/uuid"
)

// Bus is a synchronous observer registry keyed by subscription handle.
// Subscriptions are memory-only and do not survive a restart.
type Bus struct {
	mu    sync.Mutex
	order []uuid.UUID
	subs  map[uuid.UUID]func()
}

// Subscription is the handle returned by Subscribe. Cancel removes the
// callback; cancelling twice is a no-op.
type Subscription struct {
	id  uuid.UUID
	bus *Bus
}

func New() *Bus {
	return &Bus{subs: make(map[uuid.UUID]func())}
}

// Subscribe registers a callback invoked on every Publish, in registration
// order.
func (b *Bus) Subscribe(fn func()) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New()
	b.order = append(b.order, id)
	b.subs[id] = fn
	return Subscription{id: id, bus: b}
}

// Publish synchronously invokes every currently subscribed callback on the
// calling goroutine. The subscriber set is snapshotted first, so callbacks
// may subscribe, cancel, or publish again without deadlocking; callbacks
// added during delivery are not invoked until the next Publish.
func (b *Bus) Publish() {
	b.mu.Lock()
	snapshot := make([]func(), 0, len(b.order))
	for _, id := range b.order {
		if fn, ok := b.subs[id]; ok {
			snapshot = append(snapshot, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range snapshot {
		fn()
	}
}

// Len reports the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if _, ok := s.bus.subs[s.id]; !ok {
		return
	}
	delete(s.bus.subs, s.id)
	for i, id := range s.bus.order {
		if id == s.id {
			s.bus.order = append(s.bus.order[:i], s.bus.order[i+1:]...)
			break
		}
	}
}
