package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted while a tick runs are
// delivered by the next Flush, so subscribers never observe half-applied
// state. Each event type has its own queue; Flush walks the queues in the
// order their types were first seen, so delivery order is stable run to run.
type Bus struct {
	mu     sync.Mutex // only protects queue creation and handler registration
	queues map[reflect.Type]queue
	order  []queue
}

// queue is the type-erased view of a typedQueue.
type queue interface {
	swap()
	dispatch()
}

type typedQueue[T any] struct {
	front, back []T
	handlers    []func(T)
}

func (q *typedQueue[T]) swap() {
	q.front, q.back = q.back, q.front[:0]
}

func (q *typedQueue[T]) dispatch() {
	for _, ev := range q.front {
		for _, h := range q.handlers {
			h(ev)
		}
	}
}

func NewBus() *Bus {
	return &Bus{queues: make(map[reflect.Type]queue)}
}

func queueFor[T any](b *Bus) *typedQueue[T] {
	t := reflect.TypeFor[T]()
	if q, ok := b.queues[t]; ok {
		return q.(*typedQueue[T])
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	q := &typedQueue[T]{}
	b.queues[t] = q
	b.order = append(b.order, q)
	return q
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	q := queueFor[T](b)
	q.back = append(q.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	q := queueFor[T](b)
	b.mu.Lock()
	defer b.mu.Unlock()
	q.handlers = append(q.handlers, fn)
}

// Pending returns how many events of type T wait in the back buffer.
func Pending[T any](b *Bus) int {
	return len(queueFor[T](b).back)
}

// Flush moves every queued event to the front buffer and delivers it.
// Events emitted by a handler wait for the next Flush. The driver calls it
// once per tick after the Runner.
func (b *Bus) Flush() {
	for _, q := range b.order {
		q.swap()
	}
	for _, q := range b.order {
		q.dispatch()
	}
}
