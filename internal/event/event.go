// Package event provides the typed, priority ordered events that drive menu listeners along with
// the predicates listeners use to opt in to them.
//
// Nothing in this package is safe for concurrent use. Events are produced and drained by the same
// control loop.
package event

import "fmt"

// Type identifies the kind of an Event. The built in types are produced by the gamepad generator,
// further types can be added with Registry.Register.
type Type int

const (
	// Any is only valid as a Router subscription and matches every type.
	Any Type = iota
	// Click is emitted on a button false->true edge.
	Click
	// Release is emitted on a button true->false edge.
	Release
	// Hold is emitted periodically while a button stays pressed.
	Hold

	firstCustom
)

func (t Type) String() string {
	return Default.Name(t)
}

// DefaultPriority is used for events that do not specify one.
const DefaultPriority = 1

// Event is an immutable value describing something that happened during a frame. Lower priority
// values are serviced first; events of equal priority keep their injection order.
type Event struct {
	Type     Type
	Priority int
	Data     any
	seq      uint64
}

func New(evtType Type, priority int, data any) Event {
	return Event{Type: evtType, Priority: priority, Data: data}
}

// Seq returns the injection sequence number assigned by the Queue, zero before injection.
func (e Event) Seq() uint64 {
	return e.seq
}

func (e Event) String() string {
	return fmt.Sprintf("%s(p=%d) %v", e.Type, e.Priority, e.Data)
}
