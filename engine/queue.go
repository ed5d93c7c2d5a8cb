// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Queue is a bounded single-producer single-consumer ring of events. One
// goroutine may Push while another Pops; neither ever blocks.
type Queue struct {
	buf  []Event
	mask uint64

	_    cpu.CacheLinePad
	head atomic.Uint64 // next slot to pop, owned by the consumer
	_    cpu.CacheLinePad
	tail atomic.Uint64 // next slot to push, owned by the producer
	_    cpu.CacheLinePad
}

// NewQueue creates a queue holding at least size events.
func NewQueue(size int) *Queue {
	n := 1
	for n < size {
		n <<= 1
	}
	return &Queue{buf: make([]Event, n), mask: uint64(n - 1)}
}

// Push appends e, or returns false when the queue is full.
func (q *Queue) Push(e Event) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.buf)) {
		return false
	}
	q.buf[tail&q.mask] = e
	q.tail.Store(tail + 1)
	return true
}

// Pop removes the oldest event.
func (q *Queue) Pop() (Event, bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return Event{}, false
	}
	e := q.buf[head&q.mask]
	q.head.Store(head + 1)
	return e, true
}

// Len is a snapshot; it may be stale by the time it is used.
func (q *Queue) Len() int { return int(q.tail.Load() - q.head.Load()) }

func (q *Queue) Cap() int { return len(q.buf) }
