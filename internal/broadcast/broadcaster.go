package broadcast

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

// subscriberBuffer holds more than a typical batch of high-severity alerts.
const subscriberBuffer = 100

// Broadcaster fans alerts out to live stream subscribers.
type Broadcaster struct {
	subscribers map[uint64]chan models.Disaster
	nextID      atomic.Uint64
	mu          sync.RWMutex

	seenMu sync.Mutex
	seen   map[string]struct{} // ids in the previous batch
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan models.Disaster),
		seen:        make(map[string]struct{}),
	}
}

func (b *Broadcaster) Subscribe() (uint64, <-chan models.Disaster) {
	id := b.nextID.Add(1)
	ch := make(chan models.Disaster, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(d models.Disaster) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- d:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) Name() string {
	return "stream"
}

// Deliver streams the batch's high and critical alerts that were not part of
// the previous batch.
func (b *Broadcaster) Deliver(_ context.Context, batch []models.Disaster) error {
	b.seenMu.Lock()
	prev := b.seen
	b.seen = make(map[string]struct{}, len(batch))
	for _, d := range batch {
		b.seen[d.ID] = struct{}{}
	}
	b.seenMu.Unlock()

	for _, d := range batch {
		if _, ok := prev[d.ID]; ok {
			continue
		}
		if ShouldBroadcast(d) {
			b.Broadcast(d)
		}
	}
	return nil
}

// ShouldBroadcast is true for alerts of high severity or above.
func ShouldBroadcast(d models.Disaster) bool {
	return d.Severity.AtLeast(models.SeverityHigh)
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, causing streams to exit gracefully
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
