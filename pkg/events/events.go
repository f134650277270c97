// Package events provides a small in-process event bus.
//
// Handlers subscribe to an event name or to Wildcard and are invoked
// synchronously, in subscription order, by Publish.
package events

import (
	"context"
	"sync"
	"time"
)

// Wildcard subscribes a handler to every event.
const Wildcard = "*"

// Event is a named notification with an optional payload.
type Event struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
	Data any       `json:"data,omitempty"`
}

// Handler receives published events.
type Handler func(ctx context.Context, e Event)

// Publisher publishes events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type subscription struct {
	id      uint64
	name    string
	handler Handler
}

// Bus is a synchronous publish/subscribe dispatcher. The zero value is
// ready to use.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for events named name (or every event when
// name is Wildcard). The returned function removes the subscription and is
// safe to call more than once.
func (b *Bus) Subscribe(name string, handler Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, name: name, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every matching handler. A zero Time is set to now.
// Delivery stops early if ctx is done.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	// Copy matching handlers so they can subscribe or unsubscribe while running
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.name == e.Name || s.name == Wildcard {
			handlers = append(handlers, s.handler)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := ctx.Err(); err != nil {
			return err
		}
		h(ctx, e)
	}
	return nil
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Ensure Bus implements Publisher.
var _ Publisher = (*Bus)(nil)
