package menu

// Payload carries values into a menu's builder when it is inflated or revisited.
type Payload map[string]any

func NewPayload() Payload {
	return Payload{}
}

// With returns the payload with the key set, allocating when the payload is nil.
func (p Payload) With(key string, value any) Payload {
	if p == nil {
		p = Payload{}
	}

	p[key] = value

	return p
}

func (p Payload) Has(key string) bool {
	_, found := p[key]

	return found
}

// Get returns the value stored under key when it holds a T.
func Get[T any](payload Payload, key string) (T, bool) {
	value, found := payload[key]
	if !found {
		var zero T

		return zero, false
	}

	typed, ok := value.(T)

	return typed, ok
}
