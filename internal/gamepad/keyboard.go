package gamepad

import "time"

// DefaultReleaseWindow is how long a key press keeps a button down. Terminals report key repeats
// but never key releases, so a held key keeps refreshing the window.
const DefaultReleaseWindow = 150 * time.Millisecond

// KeyboardPad is a Source driven by key presses instead of hardware.
type KeyboardPad struct {
	now     func() time.Time
	window  time.Duration
	pressed map[Button]time.Time
	latched map[Button]bool
}

func NewKeyboardPad(now func() time.Time, window time.Duration) *KeyboardPad {
	if now == nil {
		now = time.Now
	}

	if window <= 0 {
		window = DefaultReleaseWindow
	}

	return &KeyboardPad{
		now:     now,
		window:  window,
		pressed: map[Button]time.Time{},
		latched: map[Button]bool{},
	}
}

// Press marks the button as down for the release window.
func (k *KeyboardPad) Press(button Button) {
	k.pressed[button] = k.now()
}

// Latch holds a button down until Unlatch, for hosts that do deliver key releases.
func (k *KeyboardPad) Latch(button Button) {
	k.latched[button] = true
}

func (k *KeyboardPad) Unlatch(button Button) {
	delete(k.latched, button)
}

// ReleaseAll drops every pressed and latched button.
func (k *KeyboardPad) ReleaseAll() {
	k.pressed = map[Button]time.Time{}
	k.latched = map[Button]bool{}
}

func (k *KeyboardPad) SetWindow(window time.Duration) {
	if window > 0 {
		k.window = window
	}
}

func (k *KeyboardPad) Button(button Button) bool {
	if k.latched[button] {
		return true
	}

	pressedAt, found := k.pressed[button]
	if !found {
		return false
	}

	if k.now().Sub(pressedAt) >= k.window {
		delete(k.pressed, button)

		return false
	}

	return true
}

// Axis is always centered, a keyboard has no analog input.
func (k *KeyboardPad) Axis(_ Slot, _ Axis) float64 {
	return 0
}

func (k *KeyboardPad) Stick(_ Slot, _ Stick) Vector {
	return Vector{}
}
