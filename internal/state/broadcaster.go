// Package state provides a minimal observable data holder: mutating
// components publish snapshots, presentation components subscribe. Every
// publication is delivered to all current subscribers synchronously,
// before the mutating call returns.
package state

import "sync"

// Broadcaster fans one value type out to any number of subscribers.
// The zero value is not usable; construct with [NewBroadcaster].
type Broadcaster[T any] struct {
	mu   sync.Mutex
	subs map[int]func(T)
	next int
}

func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn to receive every subsequent publication and
// returns a cancel function that removes the subscription. fn runs on the
// publisher's goroutine and must not block.
func (b *Broadcaster[T]) Subscribe(fn func(T)) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers v to every current subscriber before returning.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	fns := make([]func(T), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
