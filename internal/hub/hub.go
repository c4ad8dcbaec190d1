// Package hub implements the in-memory auction event log that viewers
// observe through long-polling. Events are volatile: the log is bounded,
// oldest entries are evicted first, and nothing survives a restart.
package hub

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	EventTypeAuctionStatus        = "auction_status"
	EventTypeCurrentPlayerChanged = "current_player_changed"
	EventTypeBidPlaced            = "bid_placed"
	EventTypePlayerSold           = "player_sold"
)

// Event is a single entry in the auction event log. IDs are strictly
// increasing starting at 1, so clients can resume polling with the last ID
// they have seen and detect eviction gaps by a break in continuity.
type Event struct {
	ID   int64                  `json:"id"`
	Ts   time.Time              `json:"ts"`
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// Hub is an append-only, bounded event log with long-poll fan-out.
// A single mutex serializes ID assignment and appends; waiters park on a
// broadcast channel that is closed and replaced on every publish.
type Hub struct {
	mu        sync.Mutex
	events    []Event
	lastID    int64
	maxEvents int
	wake      chan struct{}
}

func New(maxEvents int) *Hub {
	return &Hub{
		maxEvents: maxEvents,
		wake:      make(chan struct{}),
	}
}

// Publish appends a new event and wakes every parked waiter. It never fails;
// callers treat it as fire-and-forget after their own state change commits.
func (h *Hub) Publish(eventType string, data map[string]interface{}) Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastID++
	evt := Event{
		ID:   h.lastID,
		Ts:   time.Now().UTC(),
		Type: eventType,
		Data: data,
	}
	h.events = append(h.events, evt)

	if len(h.events) > h.maxEvents {
		trimmed := make([]Event, h.maxEvents)
		copy(trimmed, h.events[len(h.events)-h.maxEvents:])
		h.events = trimmed
	}

	close(h.wake)
	h.wake = make(chan struct{})

	return evt
}

// Events returns, in ascending ID order, up to limit retained events with
// ID > sinceID. It never blocks. If sinceID has already been evicted the
// result starts at the oldest retained event; callers detect the gap by the
// break in ID continuity and resynchronize with a snapshot fetch.
func (h *Hub) Events(sinceID int64, limit int) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.eventsSinceLocked(sinceID, limit)
}

// Wait blocks until at least one event with ID > sinceID exists or the
// context expires, whichever comes first. On expiry it returns an empty
// batch, never an error and never a partial event.
func (h *Hub) Wait(ctx context.Context, sinceID int64, limit int) []Event {
	for {
		h.mu.Lock()
		ready := h.eventsSinceLocked(sinceID, limit)
		wake := h.wake
		h.mu.Unlock()

		if len(ready) > 0 {
			return ready
		}

		select {
		case <-wake:
		case <-ctx.Done():
			return []Event{}
		}
	}
}

// LastID returns the most recently assigned event ID.
func (h *Hub) LastID() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastID
}

func (h *Hub) eventsSinceLocked(sinceID int64, limit int) []Event {
	// Events are sorted by ID, so find the first entry past sinceID.
	start := sort.Search(len(h.events), func(i int) bool {
		return h.events[i].ID > sinceID
	})

	ready := h.events[start:]
	if limit > 0 && len(ready) > limit {
		ready = ready[:limit]
	}

	out := make([]Event, len(ready))
	copy(out, ready)
	return out
}
