// Package toggle implements edge detection over a polled boolean stream, typically a gamepad
// button sampled once per frame.
package toggle

import "fmt"

// Kind selects how a Toggle turns raw input edges into its logical output.
type Kind int

const (
	// Flip inverts the output on every press. The output persists until the next press.
	Flip Kind = iota
	// TrueOnce reads true exactly once after each press.
	TrueOnce
	// TrueOnceAllowTurnOff shares the Flip transitions.
	TrueOnceAllowTurnOff
	// TrueWhileHeldOnce reads true from the press until the input is released.
	TrueWhileHeldOnce
)

func (k Kind) String() string {
	switch k {
	case Flip:
		return "flip"
	case TrueOnce:
		return "true_once"
	case TrueOnceAllowTurnOff:
		return "true_once_allow_turn_off"
	case TrueWhileHeldOnce:
		return "true_while_held_once"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Toggle is not safe for concurrent use. Feed it from the same loop that reads it.
type Toggle struct {
	kind  Kind
	state bool
	// armed is set once the input has been observed false, so a held press produces one edge.
	armed bool
}

// New returns a toggle of the given kind with its output preset to initial.
func New(kind Kind, initial bool) *Toggle {
	switch kind {
	case Flip, TrueOnce, TrueOnceAllowTurnOff, TrueWhileHeldOnce:
	default:
		panic(fmt.Sprintf("toggle: unknown kind %d", int(kind)))
	}

	return &Toggle{kind: kind, state: initial, armed: true}
}

// Update advances the edge detector with the latest raw sample.
func (t *Toggle) Update(pressed bool) {
	switch t.kind {
	case Flip, TrueOnceAllowTurnOff:
		if pressed && t.armed {
			t.state = !t.state
			t.armed = false
		} else if !pressed {
			t.armed = true
		}
	case TrueOnce:
		if pressed && t.armed {
			t.state = true
			t.armed = false
		} else if !pressed {
			t.armed = true
		}
	case TrueWhileHeldOnce:
		if pressed && t.armed {
			t.state = true
			t.armed = false
		} else if !pressed {
			t.state = false
			t.armed = true
		}
	}
}

// State returns the logical output. For TrueOnce the output is consumed by the read.
func (t *Toggle) State() bool {
	out := t.state
	if t.kind == TrueOnce {
		t.state = false
	}

	return out
}

// Kind returns the kind the toggle was built with.
func (t *Toggle) Kind() Kind {
	return t.kind
}

// Reset clears the output and re-arms the detector.
func (t *Toggle) Reset() {
	t.state = false
	t.armed = true
}
