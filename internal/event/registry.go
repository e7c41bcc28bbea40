package event

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

var (
	ErrDuplicateType = errors.New("event type already registered")
	ErrUnknownType   = errors.New("unknown event type")
)

// Registry is the static table of event type names, populated at startup. Element kinds also
// declare here which event types they handle so hosts can list them without inspecting values.
type Registry struct {
	names    map[Type]string
	types    map[string]Type
	handlers map[string][]Type
	next     Type
}

// Default holds the built in types. Hosts register custom types on it during startup.
var Default = NewRegistry() //nolint:gochecknoglobals

func NewRegistry() *Registry {
	registry := &Registry{
		names:    map[Type]string{},
		types:    map[string]Type{},
		handlers: map[string][]Type{},
		next:     firstCustom,
	}

	registry.add("any", Any)
	registry.add("click", Click)
	registry.add("release", Release)
	registry.add("hold", Hold)

	return registry
}

func (r *Registry) add(name string, evtType Type) {
	r.names[evtType] = name
	r.types[name] = evtType
}

// Register allocates a new custom type.
func (r *Registry) Register(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, found := r.types[name]; found {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateType, name)
	}

	evtType := r.next
	r.next++
	r.add(name, evtType)

	return evtType, nil
}

// Name returns the registered name for the type.
func (r *Registry) Name(evtType Type) string {
	if name, found := r.names[evtType]; found {
		return name
	}

	return fmt.Sprintf("type(%d)", int(evtType))
}

// Lookup resolves a name, case-insensitively.
func (r *Registry) Lookup(name string) (Type, error) {
	evtType, found := r.types[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}

	return evtType, nil
}

// Declare records that the element kind handles the given types.
func (r *Registry) Declare(kind string, types ...Type) {
	r.handlers[kind] = append(r.handlers[kind], types...)
}

// Handles reports whether the element kind declared the type.
func (r *Registry) Handles(kind string, evtType Type) bool {
	for _, declared := range r.handlers[kind] {
		if declared == Any || declared == evtType {
			return true
		}
	}

	return false
}

// Declared returns the types declared for the kind.
func (r *Registry) Declared(kind string) []Type {
	return r.handlers[kind]
}

// Kinds returns every element kind with declarations, sorted.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	return kinds
}
