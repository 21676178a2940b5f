// package spsc provides a bounded single-producer single-consumer queue that
// never blocks and never allocates after construction.
package spsc

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Queue is a fixed capacity ring. Push must only ever be called from one
// goroutine and Pop/DrainLatest from one other goroutine.
type Queue[T any] struct {
	buf []T

	_    cpu.CacheLinePad
	head atomic.Uint64 // next slot to read, written by the consumer
	_    cpu.CacheLinePad
	tail atomic.Uint64 // next slot to write, written by the producer
	_    cpu.CacheLinePad
}

// New makes a Queue that can hold up to capacity values.
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		panic(fmt.Errorf("spsc: capacity %d < 1", capacity))
	}
	return &Queue[T]{buf: make([]T, capacity)}
}

// Cap is the fixed capacity.
func (q *Queue[T]) Cap() int { return len(q.buf) }

// Len is the number of values currently queued. It is only a snapshot when
// called while the other side is active.
func (q *Queue[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Push enqueues v. If the queue is full it returns false and does nothing.
func (q *Queue[T]) Push(v T) bool {
	t := q.tail.Load()
	if t-q.head.Load() >= uint64(len(q.buf)) {
		return false
	}
	q.buf[t%uint64(len(q.buf))] = v
	q.tail.Store(t + 1)
	return true
}

// Pop dequeues the oldest value, if there is one.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	h := q.head.Load()
	if h == q.tail.Load() {
		return zero, false
	}
	i := h % uint64(len(q.buf))
	v := q.buf[i]
	q.buf[i] = zero
	q.head.Store(h + 1)
	return v, true
}

// DrainLatest pops everything currently queued and returns only the newest
// value. The second result is false if nothing was queued.
func (q *Queue[T]) DrainLatest() (T, bool) {
	var (
		latest T
		ok     bool
	)
	for {
		v, more := q.Pop()
		if !more {
			return latest, ok
		}
		latest, ok = v, true
	}
}
