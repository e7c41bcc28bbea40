package menus

import (
	"strings"

	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/menu"
)

// About lists the element kinds known to the registry and the event types each one handles.
func About(env Env) *menu.Menu {
	registry := env.Registry
	if registry == nil {
		registry = event.Default
	}

	return menu.New("about", func(m *menu.Menu, _ menu.Payload) {
		m.AddItem(menu.NewText("halgui element kinds"))
		for _, kind := range registry.Kinds() {
			names := make([]string, 0, len(registry.Declared(kind)))
			for _, evtType := range registry.Declared(kind) {
				names = append(names, registry.Name(evtType))
			}

			m.AddItem(menu.NewText(kind + ": " + strings.Join(names, " ")))
		}

		m.AddItem(backButton())
	}, env.Opts...)
}
