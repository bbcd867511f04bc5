package engine

import (
	"sync"

	"github.com/google/uuid"
)

// Engine lifecycle events.
const (
	EventReady   = "ready"
	EventDestroy = "destroy"
)

// Listener receives the payload of an emitted event.
type Listener func(data any)

// ListenerID identifies one subscription so it can be removed without
// comparing functions.
type ListenerID uuid.UUID

// NilListenerID is returned when a subscription could not be made.
var NilListenerID = ListenerID(uuid.Nil)

func (id ListenerID) String() string {
	return uuid.UUID(id).String()
}

type subscription struct {
	id       ListenerID
	listener Listener
	once     bool
}

// EventBus is a synchronous observer registry keyed by event name.
type EventBus struct {
	lock          sync.RWMutex
	subscriptions map[string][]subscription
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscriptions: make(map[string][]subscription),
	}
}

// On registers l for name and returns its handle.
func (b *EventBus) On(name string, l Listener) ListenerID {
	return b.add(name, l, false)
}

// Once registers l for the next emit of name only.
func (b *EventBus) Once(name string, l Listener) ListenerID {
	return b.add(name, l, true)
}

func (b *EventBus) add(name string, l Listener, once bool) ListenerID {
	if l == nil {
		return NilListenerID
	}
	id := ListenerID(uuid.New())
	b.lock.Lock()
	defer b.lock.Unlock()
	b.subscriptions[name] = append(b.subscriptions[name], subscription{id: id, listener: l, once: once})
	return id
}

// Off removes the listener with the given handle. It reports whether one was removed.
func (b *EventBus) Off(name string, id ListenerID) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	subs := b.subscriptions[name]
	for i, s := range subs {
		if s.id == id {
			b.setLocked(name, append(subs[:i:i], subs[i+1:]...))
			return true
		}
	}
	return false
}

// Emit calls every listener of name in registration order and reports
// whether there were any. Listeners run without the bus lock held, so they
// may subscribe, unsubscribe or emit again; those changes apply to later emits.
func (b *EventBus) Emit(name string, data any) bool {
	b.lock.Lock()
	subs := b.subscriptions[name]
	if len(subs) == 0 {
		b.lock.Unlock()
		return false
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	remaining := subs[:0:0]
	for _, s := range subs {
		if !s.once {
			remaining = append(remaining, s)
		}
	}
	b.setLocked(name, remaining)
	b.lock.Unlock()

	for _, s := range snapshot {
		s.listener(data)
	}
	return true
}

// ListenerCount returns the number of listeners registered for name.
func (b *EventBus) ListenerCount(name string) int {
	b.lock.RLock()
	defer b.lock.RUnlock()
	return len(b.subscriptions[name])
}

// RemoveAll drops every listener of every event.
func (b *EventBus) RemoveAll() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.subscriptions = make(map[string][]subscription)
}

func (b *EventBus) setLocked(name string, subs []subscription) {
	if len(subs) == 0 {
		delete(b.subscriptions, name)
		return
	}
	b.subscriptions[name] = subs
}
