// Package menus holds the demo menu trees shipped with the halgui binary.
package menus

import (
	"errors"
	"time"

	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/menu"
)

var errRegister = errors.New("failed to register menu events")

const (
	PayloadText = "text"

	eventTextEntered = "text_entered"

	TreeMain    = "main"
	TreeCounter = "counter"
)

// Blinker changes the cursor blink interval of every menu, implemented by gui.GUI.
type Blinker interface {
	SetBlinkSpeed(speed time.Duration)
}

// Env is what the demo menus need from the host.
type Env struct {
	Blink    Blinker
	Queue    *event.Queue
	Registry *event.Registry
	Log      *EventLog
	// TextEntered is injected with the entered string when the keyboard menu is confirmed.
	TextEntered event.Type
	// OnBlinkSpeed is called after the settings menu changes the blink interval, may be nil.
	OnBlinkSpeed func(speed time.Duration)
	Opts         []menu.Opt
}

// RegisterEvents adds the custom event types of the demo menus to the registry.
// It is safe to call more than once.
func RegisterEvents(registry *event.Registry) (event.Type, error) {
	if existing, errLookup := registry.Lookup(eventTextEntered); errLookup == nil {
		return existing, nil
	}

	textEntered, err := registry.Register(eventTextEntered)
	if err != nil {
		return event.Any, errors.Join(err, errRegister)
	}

	return textEntered, nil
}

func confirm(slot gamepad.Slot) event.Criteria {
	return gamepad.OnClick(gamepad.Button{Slot: slot, Key: gamepad.A})
}

func openButton(label string, next *menu.Menu) *menu.Button {
	return menu.NewButton(label, confirm(gamepad.Gamepad1), func(ctx menu.Context, _ event.Event) bool {
		ctx.Nav.Inflate(next, nil)

		return true
	})
}

func backButton() *menu.GlobalButton {
	return menu.NewGlobalButton(gamepad.OnClick(gamepad.Pad1(gamepad.B)), func(ctx menu.Context, _ event.Event) bool {
		ctx.Nav.Back(nil)

		return true
	})
}

// Main is the root of the primary tree.
func Main(env Env) *menu.Menu {
	keyboard := Keyboard(env)
	settings := Settings(env)
	eventLog := EventLogMenu(env)
	about := About(env)

	return menu.New(TreeMain, func(m *menu.Menu, payload menu.Payload) {
		m.AddItems(
			openButton("Keyboard", keyboard),
			openButton("Settings", settings),
			openButton("Event log", eventLog),
			openButton("About", about),
		)

		if text, found := menu.Get[string](payload, PayloadText); found {
			m.AddItem(menu.NewText("Entered: " + text))
		}
	}, env.Opts...)
}
