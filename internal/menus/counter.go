package menus

import (
	"strconv"

	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/menu"
)

// Counter is the root of the second tree, driven entirely by gamepad 2. The count survives
// re-initialization of the menu.
func Counter(env Env) *menu.Menu {
	count := 0
	press := confirm(gamepad.Gamepad2)
	held := gamepad.WhileHeld(gamepad.Pad2(gamepad.A))

	return menu.New(TreeCounter, func(m *menu.Menu, _ menu.Payload) {
		status := menu.NewText("")
		show := func() {
			status.SetText("Count: " + strconv.Itoa(count))
		}
		show()

		step := func(delta int) menu.Action {
			return func(_ menu.Context, _ event.Event) bool {
				count += delta
				show()

				return true
			}
		}

		m.AddItems(
			status,
			menu.NewButton("Increment", press, step(1)).On(held),
			menu.NewButton("Decrement", press, step(-1)).On(held),
			menu.NewButton("Reset", press, func(_ menu.Context, _ event.Event) bool {
				count = 0
				show()

				return true
			}),
		)
	}, env.Opts...)
}
