package notify

import (
	"sync"
	"sync/atomic"

	"github.com/mr1hm/go-wildfire-watch/internal/models"
)

const subscriberBuffer = 100

// Broadcaster fans notifications out to live stream subscribers. A subscriber
// that falls subscriberBuffer messages behind misses what follows until it
// catches up.
type Broadcaster struct {
	mu      sync.RWMutex
	streams map[uint64]chan *models.Notification
	closed  bool

	nextID  atomic.Uint64
	dropped atomic.Uint64
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		streams: make(map[uint64]chan *models.Notification),
	}
}

// Subscribe registers a stream. After Close the returned channel is already
// closed, so callers see end-of-stream instead of blocking.
func (b *Broadcaster) Subscribe() (uint64, <-chan *models.Notification) {
	id := b.nextID.Add(1)
	ch := make(chan *models.Notification, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return id, ch
	}
	b.streams[id] = ch
	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.streams[id]; ok {
		close(ch)
		delete(b.streams, id)
	}
}

// Broadcast returns how many subscribers received n.
func (b *Broadcaster) Broadcast(n *models.Notification) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, ch := range b.streams {
		select {
		case ch <- n:
			delivered++
		default:
			b.dropped.Add(1)
		}
	}
	return delivered
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.streams)
}

// Dropped counts deliveries skipped because a subscriber's buffer was full.
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// Close ends every open stream and refuses new ones.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, ch := range b.streams {
		close(ch)
		delete(b.streams, id)
	}
}
