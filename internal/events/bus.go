// Package events provides a small synchronous in-process event bus.
// Publishers block until every subscriber handler has returned, which
// gives settings observers the "notified before the update call returns"
// guarantee.
package events

import "sync"

// Topic names events on the bus.
type Topic string

const (
	// TopicSettingsChanged fires after UI preferences are updated or reset.
	TopicSettingsChanged Topic = "settings.changed"
	// TopicPresentationMode fires after the presentation-mode flag flips.
	TopicPresentationMode Topic = "settings.presentation_mode"
	// TopicSnapshotRefreshed fires after a refresh pass installs new data.
	TopicSnapshotRefreshed Topic = "snapshot.refreshed"
)

// Handler receives a published payload.
type Handler func(payload any)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans published events out to subscribers, synchronously and in
// subscription order.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Topic][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]subscription)}
}

// Subscribe registers a handler for a topic and returns an unsubscribe
// function. Handlers must not call Publish on the same goroutine path
// that invoked them.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[topic] = append(b.handlers[topic], subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[topic]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the payload to every subscriber of the topic before
// returning.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[topic]))
	copy(subs, b.handlers[topic])
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(payload)
	}
}
