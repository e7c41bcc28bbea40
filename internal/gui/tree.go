package gui

import (
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/menu"
	"github.com/leighmacdonald/halgui/internal/toggle"
)

// Controls are the buttons that move the cursor within a tree.
type Controls struct {
	Up    gamepad.Button
	Down  gamepad.Button
	Left  gamepad.Button
	Right gamepad.Button
}

// DefaultControls uses the first gamepad's dpad.
func DefaultControls() Controls {
	return Controls{
		Up:    gamepad.Pad1(gamepad.DpadUp),
		Down:  gamepad.Pad1(gamepad.DpadDown),
		Left:  gamepad.Pad1(gamepad.DpadLeft),
		Right: gamepad.Pad1(gamepad.DpadRight),
	}
}

// Tree is one independent workflow: a browser style history of menus with the current menu on
// top, and a forward stack of menus left through Back.
type Tree struct {
	id       int
	history  []*menu.Menu
	forward  []*menu.Menu
	controls Controls
	up       *toggle.Toggle
	down     *toggle.Toggle
	left     *toggle.Toggle
	right    *toggle.Toggle
}

func newTree(id int, root *menu.Menu, controls Controls) *Tree {
	return &Tree{
		id:       id,
		history:  []*menu.Menu{root},
		controls: controls,
		up:       toggle.New(toggle.TrueOnce, false),
		down:     toggle.New(toggle.TrueOnce, false),
		left:     toggle.New(toggle.TrueOnce, false),
		right:    toggle.New(toggle.TrueOnce, false),
	}
}

func (t *Tree) ID() int {
	return t.id
}

// Name is the name of the tree's root menu.
func (t *Tree) Name() string {
	return t.history[0].Name()
}

func (t *Tree) Root() *menu.Menu {
	return t.history[0]
}

func (t *Tree) Current() *menu.Menu {
	return t.history[len(t.history)-1]
}

// Depth counts the menus in the history, the current one included.
func (t *Tree) Depth() int {
	return len(t.history)
}

// ForwardDepth counts the menus Forward can return to.
func (t *Tree) ForwardDepth() int {
	return len(t.forward)
}

func (t *Tree) Controls() Controls {
	return t.controls
}

func (t *Tree) clearForward() {
	t.forward = nil
}

// moveCursor applies this frame's control presses to the menu.
func (t *Tree) moveCursor(current *menu.Menu, pressed func(gamepad.Button) bool) bool {
	t.up.Update(pressed(t.controls.Up))
	t.down.Update(pressed(t.controls.Down))
	t.left.Update(pressed(t.controls.Left))
	t.right.Update(pressed(t.controls.Right))

	moved := false
	if t.up.State() {
		moved = current.CursorUp() || moved
	}

	if t.down.State() {
		moved = current.CursorDown() || moved
	}

	if t.left.State() {
		moved = current.CursorLeft() || moved
	}

	if t.right.State() {
		moved = current.CursorRight() || moved
	}

	return moved
}

// repeat applies a hold event of a control button.
func (t *Tree) repeat(current *menu.Menu, button gamepad.Button) bool {
	switch button {
	case t.controls.Up:
		return current.CursorUp()
	case t.controls.Down:
		return current.CursorDown()
	case t.controls.Left:
		return current.CursorLeft()
	case t.controls.Right:
		return current.CursorRight()
	default:
		return false
	}
}
