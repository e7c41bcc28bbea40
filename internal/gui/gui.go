// Package gui coordinates menus into independent trees, routes a frame's input to the menu in
// front and paces rendering to the cursor blink.
//
// A GUI is not thread-safe by design. Construct one per control loop and call Step from that loop
// only.
package gui

import (
	"context"
	"log/slog"
	"time"

	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/menu"
	"github.com/leighmacdonald/halgui/internal/telemetry"
	"github.com/leighmacdonald/halgui/internal/toggle"
)

// Clock is the monotonic time source used for blinking and hold repeats.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// DefaultCycleButton switches between trees.
var DefaultCycleButton = gamepad.Pad1(gamepad.Guide) //nolint:gochecknoglobals

type GUI struct {
	sink        telemetry.Sink
	source      gamepad.Source
	clock       Clock
	queue       *event.Queue
	generator   *gamepad.Generator
	router      *event.Router
	trees       []*Tree
	cycleButton gamepad.Button
	cycle       *toggle.Toggle
	genOpts     []gamepad.GeneratorOpt
	lastRender  time.Time
	rendered    bool
	nextTreeID  int
	blinkSpeed  time.Duration
}

type Opt func(*GUI)

func WithClock(clock Clock) Opt {
	return func(g *GUI) {
		g.clock = clock
	}
}

func WithCycleButton(button gamepad.Button) Opt {
	return func(g *GUI) {
		g.cycleButton = button
	}
}

// WithGeneratorOpts passes options to the gamepad event generator.
func WithGeneratorOpts(opts ...gamepad.GeneratorOpt) Opt {
	return func(g *GUI) {
		g.genOpts = append(g.genOpts, opts...)
	}
}

func New(sink telemetry.Sink, source gamepad.Source, opts ...Opt) *GUI {
	if sink == nil || source == nil {
		panic("gui: a sink and a source are required")
	}

	gui := &GUI{
		sink:        sink,
		source:      source,
		clock:       systemClock{},
		queue:       event.NewQueue(),
		router:      event.NewRouter(),
		cycleButton: DefaultCycleButton,
		cycle:       toggle.New(toggle.TrueOnce, false),
	}

	for _, opt := range opts {
		opt(gui)
	}

	gui.generator = gamepad.NewGenerator(source, gui.queue, gui.genOpts...)

	return gui
}

func (g *GUI) Generator() *gamepad.Generator {
	return g.generator
}

// Queue is where frame events are collected. Hosts may inject their own events into it.
func (g *GUI) Queue() *event.Queue {
	return g.queue
}

// Listen subscribes an observer to the events of every frame.
func (g *GUI) Listen(evtType event.Type, handler event.Handler) {
	g.router.ListenFor(evtType, handler)
}

func (g *GUI) SetCycleButton(button gamepad.Button) {
	g.cycleButton = button
}

func (g *GUI) Now() time.Time {
	return g.clock.Now()
}

// Trees returns the trees, the current one first.
func (g *GUI) Trees() []*Tree {
	out := make([]*Tree, len(g.trees))
	copy(out, g.trees)

	return out
}

func (g *GUI) CurrentTree() *Tree {
	if len(g.trees) == 0 {
		return nil
	}

	return g.trees[0]
}

func (g *GUI) CurrentMenu() *menu.Menu {
	tree := g.CurrentTree()
	if tree == nil {
		return nil
	}

	return tree.Current()
}

// AddRootMenu starts a new tree with the menu as its root and makes it current.
func (g *GUI) AddRootMenu(root *menu.Menu, controls Controls) *Tree {
	if root == nil {
		panic("gui: nil root menu")
	}

	return g.addTree(root, controls, menu.NewPayload())
}

func (g *GUI) addTree(root *menu.Menu, controls Controls, payload menu.Payload) *Tree {
	g.leave()
	g.nextTreeID++
	tree := newTree(g.nextTreeID, root, controls)
	g.trees = append([]*Tree{tree}, g.trees...)
	g.applyBlink(root)
	root.Init(payload)
	g.rendered = false

	slog.Debug("Added root menu", slog.String("menu", root.Name()), slog.Int("tree", tree.id))

	return tree
}

// Inflate shows the menu on top of the current tree. The forward history is discarded.
func (g *GUI) Inflate(next *menu.Menu, payload menu.Payload) {
	if next == nil {
		panic("gui: nil menu inflated")
	}

	tree := g.CurrentTree()
	if tree == nil {
		g.addTree(next, DefaultControls(), payload)

		return
	}

	g.leave()
	tree.clearForward()
	tree.history = append(tree.history, next)
	g.applyBlink(next)
	next.Init(payload)
	g.rendered = false

	slog.Debug("Inflated menu", slog.String("menu", next.Name()), slog.Int("depth", tree.Depth()))
}

// Back returns to the previous menu of the current tree, reinitializing it with the payload. The
// root menu cannot be left this way.
func (g *GUI) Back(payload menu.Payload) {
	tree := g.CurrentTree()
	if tree == nil || len(tree.history) <= 1 {
		return
	}

	g.leave()
	left := tree.history[len(tree.history)-1]
	tree.history = tree.history[:len(tree.history)-1]
	tree.forward = append(tree.forward, left)
	tree.Current().Init(payload)
	g.rendered = false

	slog.Debug("Back", slog.String("from", left.Name()), slog.String("to", tree.Current().Name()))
}

// Forward redoes the last Back.
func (g *GUI) Forward(payload menu.Payload) {
	tree := g.CurrentTree()
	if tree == nil || len(tree.forward) == 0 {
		return
	}

	g.leave()
	next := tree.forward[len(tree.forward)-1]
	tree.forward = tree.forward[:len(tree.forward)-1]
	tree.history = append(tree.history, next)
	next.Init(payload)
	g.rendered = false

	slog.Debug("Forward", slog.String("to", next.Name()))
}

// Cycle makes the next tree current in round robin order. The new current tree loses its forward
// history.
func (g *GUI) Cycle() {
	if len(g.trees) == 0 {
		return
	}

	g.leave()
	g.trees = append(g.trees[1:], g.trees[0])
	tree := g.CurrentTree()
	tree.clearForward()
	tree.Current().ForceCursorUpdate()
	g.rendered = false

	slog.Debug("Cycled tree", slog.String("tree", tree.Name()), slog.Int("id", tree.id))
}

// SetBlinkSpeed applies a blink interval to every menu held by any tree and to menus shown later.
func (g *GUI) SetBlinkSpeed(speed time.Duration) {
	g.blinkSpeed = speed
	for _, tree := range g.trees {
		for _, m := range tree.history {
			m.SetBlinkSpeed(speed)
		}
		for _, m := range tree.forward {
			m.SetBlinkSpeed(speed)
		}
	}
}

// BlinkSpeed returns the interval set by SetBlinkSpeed, zero when menus keep their own.
func (g *GUI) BlinkSpeed() time.Duration {
	return g.blinkSpeed
}

func (g *GUI) applyBlink(m *menu.Menu) {
	if g.blinkSpeed > 0 {
		m.SetBlinkSpeed(g.blinkSpeed)
	}
}

// leave stops the listener pass of the menu being navigated away from.
func (g *GUI) leave() {
	if current := g.CurrentMenu(); current != nil {
		current.Interrupt()
	}
}

// Step runs one frame: poll input, handle tree cycling and cursor controls, dispatch events to the
// current menu and render when due.
func (g *GUI) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := g.clock.Now()
	g.generator.Poll(now)

	g.cycle.Update(g.source.Button(g.cycleButton))
	if g.cycle.State() {
		g.Cycle()
	}

	events := g.queue.Drain()
	for _, evt := range events {
		g.router.Send(evt)
	}

	tree := g.CurrentTree()
	if tree == nil {
		return nil
	}

	current := tree.Current()
	moved := tree.moveCursor(current, g.source.Button)
	for _, evt := range events {
		if evt.Type != event.Hold {
			continue
		}

		if button, ok := gamepad.ButtonOf(evt); ok && tree.repeat(current, button) {
			moved = true
		}
	}

	force := current.UpdateListeners(menu.Context{Nav: g, Now: now}, events)
	if force && g.CurrentMenu() == current {
		current.ForceCursorUpdate()
	}

	g.Render(moved)

	return nil
}

// Render draws the current menu when a blink interval has passed since the last draw, when an
// update is pending, or when forced.
func (g *GUI) Render(force bool) {
	current := g.CurrentMenu()
	if current == nil {
		return
	}

	now := g.clock.Now()
	if !force && g.rendered && !current.ForceUpdatePending() && now.Sub(g.lastRender) < current.BlinkSpeed() {
		return
	}

	current.Render(now, g.sink)
	g.lastRender = now
	g.rendered = true
}
