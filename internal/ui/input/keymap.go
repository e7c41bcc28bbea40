package input

import "github.com/charmbracelet/bubbles/key"

// Map holds the host keys. Every other key is looked up in the gamepad bindings.
type Map struct {
	Quit    key.Binding
	Help    key.Binding
	Forward key.Binding
}

var Default = Map{ //nolint:gochecknoglobals
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Keys"),
	),
	Forward: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "Forward"),
	),
}
