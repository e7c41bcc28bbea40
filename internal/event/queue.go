package event

import "golang.org/x/exp/slices"

// Queue collects the events produced during a frame and hands them out in service order.
type Queue struct {
	pending []Event
	nextSeq uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Inject stamps the event with the next sequence number and queues it.
func (q *Queue) Inject(evt Event) {
	q.nextSeq++
	evt.seq = q.nextSeq
	q.pending = append(q.pending, evt)
}

// Drain removes and returns all pending events ordered by priority then injection order.
func (q *Queue) Drain() []Event {
	if len(q.pending) == 0 {
		return nil
	}

	out := q.pending
	q.pending = nil
	slices.SortFunc(out, compare)

	return out
}

func (q *Queue) Len() int {
	return len(q.pending)
}

// Clear drops anything pending, used when the active screen changes mid frame.
func (q *Queue) Clear() {
	q.pending = nil
}

func compare(left Event, right Event) int {
	if left.Priority != right.Priority {
		return left.Priority - right.Priority
	}

	switch {
	case left.seq < right.seq:
		return -1
	case left.seq > right.seq:
		return 1
	default:
		return 0
	}
}
