// Package ringbuffer implements the bounded FIFO between event producers
// and the dispatcher (spec §4.4): multi-producer/single-consumer, backed
// by a mutex and condition variable rather than a channel so that a full
// buffer can report its state synchronously to the caller instead of
// blocking it (spec §5 "does not block on network", and the
// PostEvent/EventBufferFull contract in §7).
package ringbuffer

import "sync"

// Buffer is a bounded FIFO queue of arbitrary values (event.Event values
// when used by the agent). The zero value is
// not usable; construct with New.
type Buffer struct {
	mu       sync.Mutex
	notEmpty sync.Cond
	items    []any
	capacity int
	closed   bool
}

// New constructs a Buffer with room for capacity items. capacity <= 0
// falls back to the spec's documented default of 100.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 100
	}
	b := &Buffer{
		items:    make([]any, 0, capacity),
		capacity: capacity,
	}
	b.notEmpty.L = &b.mu
	return b
}

// Write enqueues item, returning false if the buffer is at capacity or
// has been closed. The caller retains ownership on a false return (spec
// §4.4 "caller retains ownership and must free").
func (b *Buffer) Write(item any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || len(b.items) >= b.capacity {
		return false
	}
	b.items = append(b.items, item)
	b.notEmpty.Signal()
	return true
}

// Read blocks until an item is available or the buffer is closed, in
// which case it returns (nil, false). Strictly FIFO across all
// producers (spec §4.4).
func (b *Buffer) Read() (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.items) == 0 && !b.closed {
		b.notEmpty.Wait()
	}
	if len(b.items) == 0 {
		return nil, false
	}
	item := b.items[0]
	b.items = b.items[1:]
	return item, true
}

// IsEmpty reports whether the buffer currently holds no items.
func (b *Buffer) IsEmpty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items) == 0
}

// Len returns the current queue depth, used by the introspection server
// and the queue-depth metric.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Close wakes any blocked Read and causes future Reads to return
// immediately with ok=false once drained. Write after Close always
// returns false. Used during the shutdown drain (spec §4.5).
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.notEmpty.Broadcast()
}
