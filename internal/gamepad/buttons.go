// Package gamepad models two polled gamepads and turns their button state into edge triggered
// events.
package gamepad

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownButton = errors.New("unknown button")

// Slot is one of the two gamepads a controller can hold.
type Slot int

const (
	Gamepad1 Slot = iota + 1
	Gamepad2
)

func (s Slot) String() string {
	return fmt.Sprintf("gamepad%d", int(s))
}

// Key is a boolean button present on every standard gamepad.
type Key int

const (
	A Key = iota
	B
	X
	Y
	DpadUp
	DpadDown
	DpadLeft
	DpadRight
	LeftBumper
	RightBumper
	LeftStickButton
	RightStickButton
	Back
	Start
	Guide

	keyCount
)

var keyNames = [keyCount]string{ //nolint:gochecknoglobals
	A:                "a",
	B:                "b",
	X:                "x",
	Y:                "y",
	DpadUp:           "dpad_up",
	DpadDown:         "dpad_down",
	DpadLeft:         "dpad_left",
	DpadRight:        "dpad_right",
	LeftBumper:       "left_bumper",
	RightBumper:      "right_bumper",
	LeftStickButton:  "left_stick_button",
	RightStickButton: "right_stick_button",
	Back:             "back",
	Start:            "start",
	Guide:            "guide",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("key(%d)", int(k))
	}

	return keyNames[k]
}

// Button addresses a key on a specific gamepad.
type Button struct {
	Slot Slot
	Key  Key
}

func (b Button) String() string {
	return b.Slot.String() + "_" + b.Key.String()
}

// Pad1 and Pad2 are shorthand constructors.
func Pad1(key Key) Button { return Button{Slot: Gamepad1, Key: key} }
func Pad2(key Key) Button { return Button{Slot: Gamepad2, Key: key} }

// ParseButton resolves names of the form gamepad1_dpad_up.
func ParseButton(name string) (Button, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, slot := range []Slot{Gamepad1, Gamepad2} {
		prefix := slot.String() + "_"
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		keyName := strings.TrimPrefix(name, prefix)
		for key, known := range keyNames {
			if known == keyName {
				return Button{Slot: slot, Key: Key(key)}, nil
			}
		}
	}

	return Button{}, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// AllButtons returns every boolean button on both gamepads in a stable polling order.
func AllButtons() []Button {
	out := make([]Button, 0, int(keyCount)*2)
	for _, slot := range []Slot{Gamepad1, Gamepad2} {
		for key := range keyCount {
			out = append(out, Button{Slot: slot, Key: key})
		}
	}

	return out
}

// Axis is an analog value in [-1, 1] (sticks) or [0, 1] (triggers).
type Axis int

const (
	LeftStickX Axis = iota
	LeftStickY
	RightStickX
	RightStickY
	LeftTrigger
	RightTrigger
)

// Stick selects one of the two thumbsticks.
type Stick int

const (
	LeftStick Stick = iota
	RightStick
)

type Vector struct {
	X float64
	Y float64
}

// Source is the polled gamepad state provided by the host runtime.
type Source interface {
	Button(button Button) bool
	Axis(slot Slot, axis Axis) float64
	Stick(slot Slot, stick Stick) Vector
}
