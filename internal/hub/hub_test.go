package hub_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/deepakscse/auction-BE/internal/hub"
)

func TestPublishAssignsSequentialIDs(t *testing.T) {
	h := hub.New(100)

	for i := 0; i < 10; i++ {
		evt := h.Publish(hub.EventTypeBidPlaced, map[string]interface{}{"n": i})
		if evt.ID != int64(i+1) {
			t.Fatalf("event %d got ID %d, want %d", i, evt.ID, i+1)
		}
	}

	events := h.Events(0, 0)
	if len(events) != 10 {
		t.Fatalf("got %d events, want 10", len(events))
	}
	for i, evt := range events {
		if evt.ID != int64(i+1) {
			t.Errorf("position %d has ID %d, want %d", i, evt.ID, i+1)
		}
	}
}

func TestEventsSinceAndLimit(t *testing.T) {
	h := hub.New(100)
	for i := 0; i < 10; i++ {
		h.Publish(hub.EventTypeBidPlaced, nil)
	}

	tests := []struct {
		name      string
		sinceID   int64
		limit     int
		wantFirst int64
		wantCount int
	}{
		{name: "all events", sinceID: 0, limit: 0, wantFirst: 1, wantCount: 10},
		{name: "resume midway", sinceID: 7, limit: 0, wantFirst: 8, wantCount: 3},
		{name: "limit applies", sinceID: 0, limit: 4, wantFirst: 1, wantCount: 4},
		{name: "caught up", sinceID: 10, limit: 0, wantCount: 0},
		{name: "future since id", sinceID: 99, limit: 0, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := h.Events(tt.sinceID, tt.limit)
			if len(events) != tt.wantCount {
				t.Fatalf("got %d events, want %d", len(events), tt.wantCount)
			}
			if tt.wantCount > 0 && events[0].ID != tt.wantFirst {
				t.Errorf("first ID = %d, want %d", events[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestEvictionKeepsMostRecent(t *testing.T) {
	h := hub.New(5)
	for i := 0; i < 8; i++ {
		h.Publish(hub.EventTypeBidPlaced, nil)
	}

	events := h.Events(0, 0)
	if len(events) != 5 {
		t.Fatalf("got %d retained events, want 5", len(events))
	}
	// IDs 1-3 were evicted; the log resumes at 4 and the client sees the gap.
	for i, evt := range events {
		if evt.ID != int64(i+4) {
			t.Errorf("position %d has ID %d, want %d", i, evt.ID, i+4)
		}
	}
}

func TestWaitTimesOutEmpty(t *testing.T) {
	h := hub.New(10)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	events := h.Wait(ctx, 0, 0)
	elapsed := time.Since(start)

	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
	if elapsed < 40*time.Millisecond || elapsed > 500*time.Millisecond {
		t.Errorf("Wait returned after %v, want ~50ms", elapsed)
	}
}

func TestWaitReturnsImmediatelyWhenBehind(t *testing.T) {
	h := hub.New(10)
	h.Publish(hub.EventTypeAuctionStatus, map[string]interface{}{"active": true})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events := h.Wait(ctx, 0, 0)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Type != hub.EventTypeAuctionStatus {
		t.Errorf("got type %q, want %q", events[0].Type, hub.EventTypeAuctionStatus)
	}
}

func TestPublishWakesAllWaiters(t *testing.T) {
	h := hub.New(10)
	const waiters = 25

	var wg sync.WaitGroup
	results := make(chan int, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			results <- len(h.Wait(ctx, 0, 0))
		}()
	}

	// Give the waiters time to park before publishing.
	time.Sleep(50 * time.Millisecond)
	h.Publish(hub.EventTypeBidPlaced, map[string]interface{}{"amount": 100})
	wg.Wait()
	close(results)

	for n := range results {
		if n != 1 {
			t.Errorf("waiter got %d events, want 1", n)
		}
	}
}

func TestConcurrentPublishesKeepIDsUnique(t *testing.T) {
	h := hub.New(1000)
	const goroutines = 10
	const perGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				h.Publish(hub.EventTypeBidPlaced, map[string]interface{}{
					"source": fmt.Sprintf("g%d", g),
				})
			}
		}(g)
	}
	wg.Wait()

	events := h.Events(0, 0)
	if len(events) != goroutines*perGoroutine {
		t.Fatalf("got %d events, want %d", len(events), goroutines*perGoroutine)
	}

	seen := make(map[int64]bool, len(events))
	var prev int64
	for _, evt := range events {
		if seen[evt.ID] {
			t.Fatalf("duplicate event ID %d", evt.ID)
		}
		seen[evt.ID] = true
		if evt.ID <= prev {
			t.Fatalf("IDs not strictly increasing: %d after %d", evt.ID, prev)
		}
		prev = evt.ID
	}
	if h.LastID() != int64(goroutines*perGoroutine) {
		t.Errorf("LastID = %d, want %d", h.LastID(), goroutines*perGoroutine)
	}
}
