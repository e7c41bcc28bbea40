package gamepad

import (
	"time"

	"github.com/leighmacdonald/halgui/internal/event"
)

// DefaultHoldInterval is how often Hold repeats while a button stays down.
const DefaultHoldInterval = 250 * time.Millisecond

// ButtonData is the payload of events produced by the Generator.
type ButtonData struct {
	Button Button
	Old    bool
	New    bool
}

func (d ButtonData) String() string {
	return d.Button.String()
}

type buttonState struct {
	last     bool
	priority int
	timer    time.Time
}

// Generator diffs the polled state of every button each frame and injects click, release and hold
// events into a queue. It is not safe for concurrent use.
type Generator struct {
	source          Source
	queue           *event.Queue
	holdInterval    time.Duration
	defaultPriority int
	order           []Button
	states          map[Button]*buttonState
}

type GeneratorOpt func(*Generator)

func WithHoldInterval(interval time.Duration) GeneratorOpt {
	return func(g *Generator) {
		g.holdInterval = interval
	}
}

func WithDefaultPriority(priority int) GeneratorOpt {
	return func(g *Generator) {
		g.defaultPriority = priority
	}
}

func NewGenerator(source Source, queue *event.Queue, opts ...GeneratorOpt) *Generator {
	if source == nil || queue == nil {
		panic("gamepad: generator requires a source and a queue")
	}

	generator := &Generator{
		source:          source,
		queue:           queue,
		holdInterval:    DefaultHoldInterval,
		defaultPriority: event.DefaultPriority,
	}

	for _, opt := range opts {
		opt(generator)
	}

	generator.Reset()

	return generator
}

// Reset forgets all observed state and priorities, tracking every standard button on both pads.
func (g *Generator) Reset() {
	g.order = AllButtons()
	g.states = make(map[Button]*buttonState, len(g.order))
	for _, button := range g.order {
		g.states[button] = &buttonState{priority: g.defaultPriority}
	}
}

// SetPriority changes the priority of events emitted for the button.
func (g *Generator) SetPriority(button Button, priority int) {
	g.state(button).priority = priority
}

func (g *Generator) Priority(button Button) int {
	return g.state(button).priority
}

// SetHoldInterval updates the repeat interval, for example after a config reload.
func (g *Generator) SetHoldInterval(interval time.Duration) {
	g.holdInterval = interval
}

func (g *Generator) HoldInterval() time.Duration {
	return g.holdInterval
}

// Poll samples every button and injects the events for this frame. It returns how many events
// were injected.
func (g *Generator) Poll(now time.Time) int {
	injected := 0
	for _, button := range g.order {
		state := g.states[button]
		current := g.source.Button(button)

		var evtType event.Type
		switch {
		case current && !state.last:
			evtType = event.Click
			state.timer = now
		case !current && state.last:
			evtType = event.Release
		case current && now.Sub(state.timer) >= g.holdInterval:
			evtType = event.Hold
			state.timer = now
		default:
			state.last = current

			continue
		}

		g.queue.Inject(event.New(evtType, state.priority, ButtonData{Button: button, Old: state.last, New: current}))
		state.last = current
		injected++
	}

	return injected
}

func (g *Generator) state(button Button) *buttonState {
	state, found := g.states[button]
	if !found {
		// Only reachable with a hand built Button outside the standard key range.
		state = &buttonState{priority: g.defaultPriority}
		g.states[button] = state
		g.order = append(g.order, button)
	}

	return state
}

func matchButtons(buttons []Button) func(evt event.Event) bool {
	return func(evt event.Event) bool {
		data, ok := evt.Data.(ButtonData)
		if !ok {
			return false
		}

		if len(buttons) == 0 {
			return true
		}

		for _, button := range buttons {
			if data.Button == button {
				return true
			}
		}

		return false
	}
}

// OnClick matches click events for any of the buttons, or any button when none are given.
func OnClick(buttons ...Button) event.Criteria {
	return event.Criteria{Type: event.Click, Match: matchButtons(buttons)}
}

func OnRelease(buttons ...Button) event.Criteria {
	return event.Criteria{Type: event.Release, Match: matchButtons(buttons)}
}

func WhileHeld(buttons ...Button) event.Criteria {
	return event.Criteria{Type: event.Hold, Match: matchButtons(buttons)}
}

// ButtonOf extracts the button from a gamepad event.
func ButtonOf(evt event.Event) (Button, bool) {
	data, ok := evt.Data.(ButtonData)

	return data.Button, ok
}
