// sim/eventqueue.go
package sim

import "container/heap"

// eventHeap implements heap.Interface and orders events by (timestamp, insertion
// sequence). The sequence number gives equal-timestamp events a stable FIFO
// order, which the determinism and packet-conservation guarantees depend on.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []*Event

func (eh eventHeap) Len() int { return len(eh) }

func (eh eventHeap) Less(i, j int) bool {
	if eh[i].Time != eh[j].Time {
		return eh[i].Time < eh[j].Time
	}
	return eh[i].seq < eh[j].seq
}

func (eh eventHeap) Swap(i, j int) { eh[i], eh[j] = eh[j], eh[i] }

func (eh *eventHeap) Push(x any) {
	*eh = append(*eh, x.(*Event))
}

func (eh *eventHeap) Pop() any {
	old := *eh
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eh = old[0 : n-1]
	return item
}

// EventQueue holds pending future events and always yields the chronologically
// earliest first. It is owned exclusively by one Simulator; constructing it
// explicitly (rather than sharing a process-wide list) keeps independent runs
// in the same process isolated.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	eq := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&eq.events)
	return eq
}

// Schedule inserts an event, preserving ascending time order with FIFO
// tie-break for equal timestamps. Once scheduled an event is never removed
// except by PopEarliest.
func (eq *EventQueue) Schedule(ev *Event) {
	ev.seq = eq.nextSeq
	eq.nextSeq++
	heap.Push(&eq.events, ev)
}

// PopEarliest removes and returns the minimum-ordered event. The second return
// value is false when the queue is empty.
func (eq *EventQueue) PopEarliest() (*Event, bool) {
	if eq.events.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&eq.events).(*Event), true
}

// IsEmpty returns true if no events remain.
func (eq *EventQueue) IsEmpty() bool {
	return eq.events.Len() == 0
}

// Len returns the number of pending events.
func (eq *EventQueue) Len() int {
	return eq.events.Len()
}
