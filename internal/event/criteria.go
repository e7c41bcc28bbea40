package event

// Criteria declares interest in one event type, optionally narrowed by a predicate.
type Criteria struct {
	Type  Type
	Match func(evt Event) bool
}

func (c Criteria) accepts(evt Event) bool {
	if c.Type != Any && c.Type != evt.Type {
		return false
	}

	return c.Match == nil || c.Match(evt)
}

// Packet is the set of criteria a listener registers. An event is delivered when any criteria
// accepts it.
type Packet []Criteria

func NewPacket(criteria ...Criteria) Packet {
	return criteria
}

// On is shorthand for a criteria that matches every event of the type.
func On(evtType Type) Criteria {
	return Criteria{Type: evtType}
}

// Add returns a packet extended with more criteria.
func (p Packet) Add(criteria ...Criteria) Packet {
	return append(p, criteria...)
}

// Satisfied reports whether the event should be delivered.
func (p Packet) Satisfied(evt Event) bool {
	for _, criteria := range p {
		if criteria.accepts(evt) {
			return true
		}
	}

	return false
}

// Types lists the distinct event types the packet declares interest in.
func (p Packet) Types() []Type {
	var out []Type
	seen := map[Type]bool{}
	for _, criteria := range p {
		if seen[criteria.Type] {
			continue
		}
		seen[criteria.Type] = true
		out = append(out, criteria.Type)
	}

	return out
}
