// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"cmp"
	"slices"
)

// TimedEvent places an Event at an absolute frame. Its Offset is ignored
// until the event is cut into a block.
type TimedEvent struct {
	Frame int
	Event Event
}

// At builds a TimedEvent.
func At(frame int, ev Event) TimedEvent { return TimedEvent{Frame: frame, Event: ev} }

// Timeline cuts an absolute event list into the block-relative slices
// Render takes.
type Timeline struct {
	events []TimedEvent
	next   int
	block  []Event
}

// NewTimeline copies events and sorts them by frame, keeping the given
// order among events on the same frame.
func NewTimeline(events []TimedEvent) *Timeline {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b TimedEvent) int { return cmp.Compare(a.Frame, b.Frame) })
	return &Timeline{events: sorted}
}

// Block returns the events falling in [start, start+frames) with their
// offsets rebased to start. Events before start that were never returned
// come out at offset 0. The slice is reused by the next call.
func (t *Timeline) Block(start, frames int) []Event {
	t.block = t.block[:0]
	end := start + frames
	for t.next < len(t.events) && t.events[t.next].Frame < end {
		ev := t.events[t.next].Event
		ev.Offset = max(t.events[t.next].Frame-start, 0)
		t.block = append(t.block, ev)
		t.next++
	}
	return t.block
}

// Remaining reports how many events have not been handed out.
func (t *Timeline) Remaining() int { return len(t.events) - t.next }

// End is one past the frame of the last event, or 0 for an empty timeline.
func (t *Timeline) End() int {
	if len(t.events) == 0 {
		return 0
	}
	return t.events[len(t.events)-1].Frame + 1
}

// Rewind starts the timeline over.
func (t *Timeline) Rewind() { t.next = 0 }
