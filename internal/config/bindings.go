package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leighmacdonald/halgui/internal/gamepad"
)

var (
	ErrConfigParse  = errors.New("failed to parse key bindings")
	errBindingsRead = errors.New("failed to read key bindings")
)

// ConfigParseError describes a single rejected line of a key binding file.
type ConfigParseError struct { //nolint:revive
	Line   int
	Text   string
	Reason string
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *ConfigParseError) Unwrap() error {
	return ErrConfigParse
}

// Binding maps terminal keys to a virtual gamepad button.
type Binding struct {
	Button gamepad.Button
	Keys   []string
}

func (b Binding) String() string {
	return b.Button.String() + ":" + strings.Join(b.Keys, ":")
}

// DefaultBindings is used when no keymap file is configured.
func DefaultBindings() []Binding {
	return []Binding{
		{Button: gamepad.Pad1(gamepad.DpadUp), Keys: []string{"up", "k"}},
		{Button: gamepad.Pad1(gamepad.DpadDown), Keys: []string{"down", "j"}},
		{Button: gamepad.Pad1(gamepad.DpadLeft), Keys: []string{"left", "h"}},
		{Button: gamepad.Pad1(gamepad.DpadRight), Keys: []string{"right", "l"}},
		{Button: gamepad.Pad1(gamepad.A), Keys: []string{"enter", "space"}},
		{Button: gamepad.Pad1(gamepad.B), Keys: []string{"esc", "backspace"}},
		{Button: gamepad.Pad1(gamepad.X), Keys: []string{"x"}},
		{Button: gamepad.Pad1(gamepad.Y), Keys: []string{"y"}},
		{Button: gamepad.Pad1(gamepad.LeftBumper), Keys: []string{"pgup"}},
		{Button: gamepad.Pad1(gamepad.RightBumper), Keys: []string{"pgdown"}},
		{Button: gamepad.Pad1(gamepad.Start), Keys: []string{"s"}},
		{Button: gamepad.Pad1(gamepad.Back), Keys: []string{"["}},
		{Button: gamepad.Pad1(gamepad.Guide), Keys: []string{"tab"}},
		{Button: gamepad.Pad2(gamepad.DpadUp), Keys: []string{"w"}},
		{Button: gamepad.Pad2(gamepad.DpadDown), Keys: []string{"shift+down"}},
		{Button: gamepad.Pad2(gamepad.DpadLeft), Keys: []string{"a"}},
		{Button: gamepad.Pad2(gamepad.DpadRight), Keys: []string{"d"}},
		{Button: gamepad.Pad2(gamepad.A), Keys: []string{"f"}},
		{Button: gamepad.Pad2(gamepad.Start), Keys: []string{"]"}},
	}
}

// ParseBindings reads lines of the form "gamepad1_a:enter:space". Blank lines and lines starting
// with # are ignored. Every malformed line is reported, each as a *ConfigParseError.
func ParseBindings(reader io.Reader) ([]Binding, error) {
	var (
		bindings []Binding
		errs     []error
		seen     = map[string]int{}
		scanner  = bufio.NewScanner(reader)
		lineNum  int
	)

	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		binding, errLine := parseBindingLine(line)
		if errLine != "" {
			errs = append(errs, &ConfigParseError{Line: lineNum, Text: raw, Reason: errLine})

			continue
		}

		for _, key := range binding.Keys {
			if prev, found := seen[key]; found {
				errs = append(errs, &ConfigParseError{
					Line:   lineNum,
					Text:   raw,
					Reason: fmt.Sprintf("key %q already bound on line %d", key, prev),
				})
			}
			seen[key] = lineNum
		}

		bindings = append(bindings, binding)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Join(err, errBindingsRead)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return bindings, nil
}

func parseBindingLine(line string) (Binding, string) {
	fields := strings.Split(line, ":")
	if len(fields) < 2 {
		return Binding{}, "expected button:key"
	}

	button, errButton := gamepad.ParseButton(fields[0])
	if errButton != nil {
		return Binding{}, "unknown button " + strings.TrimSpace(fields[0])
	}

	keys := make([]string, 0, len(fields)-1)
	for _, field := range fields[1:] {
		key := strings.ToLower(strings.TrimSpace(field))
		if key == "" {
			return Binding{}, "empty key"
		}

		keys = append(keys, key)
	}

	return Binding{Button: button, Keys: keys}, ""
}

// ReadBindings loads a keymap file. An empty path yields the default bindings.
func ReadBindings(path string) ([]Binding, error) {
	if path == "" {
		return DefaultBindings(), nil
	}

	file, errOpen := os.Open(path)
	if errOpen != nil {
		return nil, errors.Join(errOpen, errBindingsRead)
	}
	defer file.Close()

	return ParseBindings(file)
}

// WriteBindings emits bindings in the format accepted by ParseBindings.
func WriteBindings(writer io.Writer, bindings []Binding) error {
	for _, binding := range bindings {
		if _, err := fmt.Fprintln(writer, binding.String()); err != nil {
			return err
		}
	}

	return nil
}

// KeyMap indexes bindings by key for lookups from the terminal input loop.
type KeyMap map[string]gamepad.Button

func NewKeyMap(bindings []Binding) KeyMap {
	keyMap := KeyMap{}
	for _, binding := range bindings {
		for _, key := range binding.Keys {
			keyMap[key] = binding.Button
		}
	}

	return keyMap
}

func (k KeyMap) Button(key string) (gamepad.Button, bool) {
	if key == " " {
		key = "space"
	}

	button, found := k[strings.ToLower(key)]

	return button, found
}
