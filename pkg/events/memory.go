package events

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var ErrClosed = errors.New("broker closed")

type subscription struct {
	origin string
	key    string
	fn     Handler
}

// MemoryBroker delivers changes in-process, synchronously on the publishing goroutine.
type MemoryBroker struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]subscription
	closed bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[uint64]subscription)}
}

func (b *MemoryBroker) Publish(ctx context.Context, change Change) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	targets := b.matching(change)
	b.mu.RUnlock()

	for _, fn := range targets {
		fn(change)
	}
	return nil
}

// matching must be called with the read lock held.
func (b *MemoryBroker) matching(change Change) []Handler {
	ids := make([]uint64, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Handler, 0, len(ids))
	for _, id := range ids {
		sub := b.subs[id]
		if shouldDeliver(sub.origin, sub.key, change) {
			out = append(out, sub.fn)
		}
	}
	return out
}

func (b *MemoryBroker) OnDocumentChanged(origin, key string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs[id] = subscription{origin: origin, key: key, fn: fn}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (b *MemoryBroker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[uint64]subscription)
	return nil
}
