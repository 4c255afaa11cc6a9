package store

import (
	"sync"

	"github.com/google/uuid"
)

// EntityKind names a changed collection in a mutation event.
type EntityKind string

const (
	KindCustomers    EntityKind = "customers"
	KindMeasurements EntityKind = "measurements"
	KindOrders       EntityKind = "orders"
	KindTeamMembers  EntityKind = "teamMembers"
	KindSettings     EntityKind = "settings"
	KindRecord       EntityKind = "record"
)

// Op names what happened to the collection.
type Op string

const (
	OpAdded    Op = "added"
	OpUpdated  Op = "updated"
	OpDeleted  Op = "deleted"
	OpReplaced Op = "replaced"
)

// Event is published after a mutation has been persisted. ID is zero for
// whole-record operations (import, reset) and settings changes.
type Event struct {
	Kind EntityKind
	Op   Op
	ID   int
}

type subscribers struct {
	mu      sync.Mutex
	subs    map[uuid.UUID]func(Event)
	pending []Event
}

func newSubscribers() *subscribers {
	return &subscribers{subs: map[uuid.UUID]func(Event){}}
}

// Subscribe registers a callback invoked after each persisted mutation.
// Callbacks run once the store mutex has been released, so they may call
// back into the store. The returned token cancels the subscription via
// Unsubscribe.
func (s *Store) Subscribe(fn func(Event)) uuid.UUID {
	s.events.mu.Lock()
	defer s.events.mu.Unlock()
	id := uuid.New()
	s.events.subs[id] = fn
	return id
}

// Unsubscribe removes a previously registered callback.
func (s *Store) Unsubscribe(id uuid.UUID) {
	s.events.mu.Lock()
	defer s.events.mu.Unlock()
	delete(s.events.subs, id)
}

// publish queues an event while the store mutex is held; flush delivers it
// after the mutex is released.
func (s *Store) publish(ev Event) {
	s.events.mu.Lock()
	defer s.events.mu.Unlock()
	s.events.pending = append(s.events.pending, ev)
}

// flush delivers queued events. No lock is held while a callback runs, so a
// subscriber mutating the store queues (and later flushes) its own events.
func (e *subscribers) flush() {
	for {
		e.mu.Lock()
		if len(e.pending) == 0 {
			e.mu.Unlock()
			return
		}
		ev := e.pending[0]
		e.pending = e.pending[1:]
		fns := make([]func(Event), 0, len(e.subs))
		for _, fn := range e.subs {
			fns = append(fns, fn)
		}
		e.mu.Unlock()
		for _, fn := range fns {
			fn(ev)
		}
	}
}
