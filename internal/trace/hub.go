package trace

import (
	"sync"

	"github.com/theadell/soccergame/internal/match"
)

const SUBSCRIBER_BUFFER = 16

// Hub fans snapshots out to any number of subscribers and remembers the
// most recent one. Record never blocks: a subscriber that falls behind
// misses snapshots.
type Hub struct {
	mu     sync.Mutex
	last   match.Snapshot
	seen   bool
	subs   map[chan match.Snapshot]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan match.Snapshot]struct{})}
}

func (h *Hub) Record(s match.Snapshot) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = s
	h.seen = true
	for ch := range h.subs {
		select {
		case ch <- s:
		default:
		}
	}
	return nil
}

// Last returns the latest snapshot, false if nothing has been recorded.
func (h *Hub) Last() (match.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.seen
}

// Subscribe returns a channel receiving every following snapshot and a
// function to unsubscribe. The channel is closed on unsubscribe or when
// the hub is closed.
func (h *Hub) Subscribe() (<-chan match.Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan match.Snapshot, SUBSCRIBER_BUFFER)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// Close ends every subscription. Snapshots recorded afterwards are only
// kept as the latest one.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}
