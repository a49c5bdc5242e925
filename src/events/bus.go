// Package events provides window-level listener registration for the terminal UI.
// Components subscribe while they are mounted and must call the returned
// unsubscribe func when they go away.
package events

import "sync"

// Handler reports whether it consumed the event. Dispatch stops at the first consumer.
type Handler[E any] func(E) bool

type Bus[E any] struct {
	mu       sync.Mutex
	nextId   uint64
	handlers []subscription[E]
}

type subscription[E any] struct {
	id      uint64
	handler Handler[E]
}

func NewBus[E any]() *Bus[E] {
	return &Bus[E]{}
}

// Subscribe registers handler and returns a func that removes it. Calling the
// returned func more than once is harmless.
func (b *Bus[E]) Subscribe(handler Handler[E]) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextId++
	id := b.nextId
	b.handlers = append(b.handlers, subscription[E]{id: id, handler: handler})
	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[E]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.handlers {
		if s.id == id {
			b.handlers = append(b.handlers[:i:i], b.handlers[i+1:]...)
			return
		}
	}
}

// Dispatch delivers event to the most recently subscribed handlers first.
// Handlers may subscribe or unsubscribe while being dispatched to.
func (b *Bus[E]) Dispatch(event E) bool {
	b.mu.Lock()
	snapshot := make([]subscription[E], len(b.handlers))
	copy(snapshot, b.handlers)
	b.mu.Unlock()
	for i := len(snapshot) - 1; i >= 0; i-- {
		if snapshot[i].handler(event) {
			return true
		}
	}
	return false
}

// Len is the number of live subscriptions.
func (b *Bus[E]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
