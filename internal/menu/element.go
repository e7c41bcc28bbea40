package menu

import (
	"time"

	"github.com/leighmacdonald/halgui/internal/event"
)

// Element is anything placed in a menu. What it can do is decided by which of the capability
// interfaces below it implements.
type Element any

// Renders is implemented by elements that occupy a line. Elements reporting ok=false are whole
// screen elements: they take no line and are not reachable by the cursor.
type Renders interface {
	Text() (text string, ok bool)
}

// Listens receives the frame's events accepted by its packet. Returning true requests a forced
// cursor update so the screen redraws with a lit cursor.
type Listens interface {
	Criteria() event.Packet
	OnEvent(ctx Context, evt event.Event) bool
}

// Ticks is called once per frame while the element is in focus, whether or not any events arrived.
type Ticks interface {
	Tick(ctx Context) bool
}

// Blinks is told the menu's blink phase before every render.
type Blinks interface {
	SetBlink(on bool)
}

// MutatesText elements can have their text replaced at runtime.
type MutatesText interface {
	SetText(text string)
}

// Kinded elements name their kind so the event registry can prefilter events for them.
type Kinded interface {
	Kind() string
}

// Navigator moves between menus. It is implemented by the gui tree manager.
type Navigator interface {
	Inflate(next *Menu, payload Payload)
	Back(payload Payload)
	Forward(payload Payload)
}

// Context is handed to listeners.
type Context struct {
	Menu   *Menu
	Nav    Navigator
	Cursor Cursor
	Now    time.Time
}
