// Package observable provides a value container that notifies subscribers
// whenever a new value is published.
package observable

import (
	"context"
	"sync"
)

// Observable is the read-only view of a Value.
type Observable[T any] interface {
	// Get returns the current value.
	Get() T
	// Subscribe registers fn and calls it with the current value before
	// returning. The returned cancel func removes the subscription.
	Subscribe(fn func(T)) (cancel func())
	// Watch delivers the current value and every later one on a channel
	// that only ever holds the latest value. It stops when ctx is done.
	Watch(ctx context.Context) <-chan T
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Value holds a current value plus an ordered list of subscribers.
// The zero value is ready to use and holds the zero T.
//
// Notifications for one Value are serialized: a subscriber never runs
// concurrently with another subscriber of the same Value. Subscribers
// must not call Set or Subscribe on the Value that is notifying them.
type Value[T any] struct {
	notifyMu sync.Mutex

	mu      sync.Mutex
	current T
	nextID  uint64
	subs    []subscriber[T]
}

// New returns a Value seeded with initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set stores val and notifies every subscriber in subscription order.
// Subscribers are notified on every call, also when val equals the
// previous value.
func (v *Value[T]) Set(val T) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	v.current = val
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(val)
	}
}

// Subscribe registers fn and immediately calls it with the current value.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	current := v.current
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { v.remove(id) })
	}
}

// Watch implements Observable. The channel is never closed; receivers
// should also select on ctx.Done. The subscription and the goroutine
// releasing it live until ctx is done, so a context that is never
// cancelled keeps both for the lifetime of the Value.
func (v *Value[T]) Watch(ctx context.Context) <-chan T {
	ch := make(chan T, 1)
	cancel := v.Subscribe(func(val T) {
		// Drop a stale value nobody has read yet.
		select {
		case <-ch:
		default:
		}
		ch <- val
	})
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch
}

func (v *Value[T]) remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}
