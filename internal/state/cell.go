package state

import (
	"context"
	"sync"
	"time"
)

// Snapshot is a point-in-time view of a Cell.
type Snapshot[T any] struct {
	Value       T
	HasValue    bool
	Version     uint64 // incremented on every Set
	LastUpdated time.Time
}

// Cell holds the latest value of T and fans it out to subscribers.
// The zero value is ready to use and holds no value.
type Cell[T any] struct {
	mu      sync.Mutex
	snap    Snapshot[T]
	subs    map[uint64]chan T
	nextSub uint64
}

// NewCell returns a Cell that already holds initial.
func NewCell[T any](initial T) *Cell[T] {
	c := &Cell[T]{}
	c.Set(initial)
	return c
}

// Set replaces the value and delivers it to every subscriber.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(v)
}

// Update applies fn to the current value while holding the lock. When fn
// reports a change the new value is stored and published. It returns the value
// held after the call.
func (c *Cell[T]) Update(fn func(cur T) (T, bool)) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, changed := fn(c.snap.Value)
	if !changed {
		return c.snap.Value
	}
	c.setLocked(next)
	return next
}

func (c *Cell[T]) setLocked(v T) {
	c.snap.Value = v
	c.snap.HasValue = true
	c.snap.Version++
	c.snap.LastUpdated = time.Now()
	for _, ch := range c.subs {
		offer(ch, v)
	}
}

// Get returns the current value and whether one was ever set.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap.Value, c.snap.HasValue
}

// Snapshot returns a copy of the cell's bookkeeping and value.
func (c *Cell[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Subscribe returns a channel that first receives the current value (when one
// is set) and then every later value. Delivery is conflated: a slow reader
// only sees the newest value it missed. The channel closes when ctx is done.
func (c *Cell[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	c.mu.Lock()
	if c.subs == nil {
		c.subs = make(map[uint64]chan T)
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	if c.snap.HasValue {
		offer(ch, c.snap.Value)
	}
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subs, id)
		close(ch)
		c.mu.Unlock()
	}()
	return ch
}

// Subscribers returns the number of live subscriptions.
func (c *Cell[T]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// offer replaces any undelivered value in ch with v. Callers hold the cell
// lock, so they are the only sender.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}
