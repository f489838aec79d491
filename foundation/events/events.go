// Package events provides the fan-out hub that streams engine activity,
// committed transactions included, to any number of subscribers without
// ever blocking the operation that produced the event.
package events

import (
	"fmt"
	"sync"
)

// Hub maintains a mapping of unique subscriber ids and channels so
// goroutines can subscribe to and receive engine events.
type Hub struct {
	m  map[string]chan string
	mu sync.RWMutex
}

// New constructs a hub for subscribing to and receiving events.
func New() *Hub {
	return &Hub{
		m: make(map[string]chan string),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Subscribe.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.m {
		delete(h.m, id)
		close(ch)
	}
}

// Subscribe takes a unique id and returns a channel that can be used
// to receive events.
func (h *Hub) Subscribe(id string) chan string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, exists := h.m[id]
	if exists {
		return ch
	}

	// Since an event is dropped if the websocket receiver is not ready,
	// this buffer gives a slow receiver enough room to not lose events
	// while a send over the socket is in flight.
	const eventBuffer = 100

	h.m[id] = make(chan string, eventBuffer)
	return h.m[id]
}

// Unsubscribe closes and removes the channel that was provided by
// the call to Subscribe.
func (h *Hub) Unsubscribe(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, exists := h.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(h.m, id)
	close(ch)
	return nil
}

// Send delivers an event to every subscriber. Send will not block
// waiting for a receiver on any given channel.
func (h *Hub) Send(s string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.m {
		select {
		case ch <- s:
		default:
		}
	}
}
