package menus

import (
	"unicode/utf8"

	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/menu"
	"github.com/leighmacdonald/halgui/internal/selection"
)

const maxEntryLength = 16

var keyboardRows = []string{ //nolint:gochecknoglobals
	"1 2 3 4 5 6 7 8 9 0",
	"q w e r t y u i o p",
	"a s d f g h j k l",
	"z x c v b n m . -",
}

// keyboardZone makes every character of the key rows selectable and skips the gaps between them.
// The entry field on the first line is never selectable.
func keyboardZone(actionLines int) selection.Zone {
	zone := selection.Zero()
	zone.AddRow([]bool{false})

	for _, row := range keyboardRows {
		cells := make([]bool, utf8.RuneCountInString(row))
		for column, char := range []rune(row) {
			cells[column] = char != ' '
		}

		zone.AddRow(cells)
	}

	for range actionLines {
		zone.AddRow([]bool{true})
	}

	return zone
}

// Keyboard is an on screen keyboard. Confirming returns the text to the previous menu as the
// PayloadText payload and injects a TextEntered event.
func Keyboard(env Env) *menu.Menu {
	return menu.New("keyboard", func(m *menu.Menu, payload menu.Payload) {
		initial, _ := menu.Get[string](payload, PayloadText)
		field := menu.NewEntryField("Text: ", initial, maxEntryLength)
		m.AddItem(field)

		for _, text := range keyboardRows {
			var row *menu.CellButton
			row = menu.NewCellButton(text, confirm(gamepad.Gamepad1), func(_ menu.Context, _ event.Event, column int) bool {
				char := row.Cell(column)
				if char == 0 || char == ' ' {
					return false
				}

				return field.Append(char)
			})
			row.On(gamepad.WhileHeld(gamepad.Pad1(gamepad.A)))
			m.AddItem(row)
		}

		m.AddItems(
			menu.NewButton("space", confirm(gamepad.Gamepad1), func(_ menu.Context, _ event.Event) bool {
				return field.Append(' ')
			}),
			menu.NewButton("delete", confirm(gamepad.Gamepad1), func(_ menu.Context, _ event.Event) bool {
				return field.Backspace()
			}).On(gamepad.WhileHeld(gamepad.Pad1(gamepad.A))),
			menu.NewButton("done", confirm(gamepad.Gamepad1), func(ctx menu.Context, _ event.Event) bool {
				value := field.Value()
				if env.Queue != nil && env.TextEntered != event.Any {
					env.Queue.Inject(event.New(env.TextEntered, event.DefaultPriority, value))
				}

				ctx.Nav.Back(menu.NewPayload().With(PayloadText, value))

				return true
			}),
			menu.NewGlobalButton(gamepad.OnClick(gamepad.Pad1(gamepad.X)), func(_ menu.Context, _ event.Event) bool {
				return field.Backspace()
			}),
			backButton(),
		)

		m.SetSelectionZone(keyboardZone(3))
	}, env.Opts...)
}
