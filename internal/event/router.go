package event

// Handler receives routed events.
type Handler func(evt Event)

func NewRouter() *Router {
	return &Router{
		readers: make(map[Type][]Handler),
	}
}

// Router fans out drained events to observers that are not menu elements, such as the host status
// bar or an event log. It runs on the control loop so handlers must not block.
type Router struct {
	readersAny []Handler
	readers    map[Type][]Handler
}

// ListenFor registers a handler to start receiving events of the specified type.
func (r *Router) ListenFor(evtType Type, handler Handler) {
	// Any case is handled more generally
	if evtType == Any {
		r.readersAny = append(r.readersAny, handler)

		return
	}

	r.readers[evtType] = append(r.readers[evtType], handler)
}

// Send delivers the event to handlers registered for its type, then to the catch-all handlers.
func (r *Router) Send(evt Event) {
	for _, handler := range r.readers[evt.Type] {
		handler(evt)
	}

	for _, handler := range r.readersAny {
		handler(evt)
	}
}
