package eventbus

import (
	"sync"

	"escrow-market/internal/domain/offer"
)

// Hub fans out marketplace events to live subscribers (the websocket feed).
// Slow subscribers are dropped rather than allowed to block the publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan offer.Event
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan offer.Event)}
}

// Subscribe returns a buffered event channel and a cancel func that closes it.
func (h *Hub) Subscribe() (<-chan offer.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan offer.Event, 16)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber that can take it now.
func (h *Hub) Publish(evt offer.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- evt:
		default:
			// subscriber fell behind; disconnect it
			delete(h.subs, id)
			close(ch)
		}
	}
}
