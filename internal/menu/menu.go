// Package menu implements the cursor engine behind every screen: a list of elements rendered as
// lines, a selection zone restricting where the cursor may stop, a blinking cursor and the
// dispatch of frame events to the element in focus.
//
// A Menu is not safe for concurrent use and is meant to be driven by a single control loop.
package menu

import (
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/selection"
	"github.com/leighmacdonald/halgui/internal/telemetry"
)

const (
	DefaultBlinkSpeed = 500 * time.Millisecond
	DefaultGlyph      = '█'
)

var ErrInvalidCursor = errors.New("cursor position is not selectable")

// Builder populates a menu. It runs on every Init, so a menu revisited through back or forward is
// rebuilt from the payload it is given.
type Builder func(menu *Menu, payload Payload)

// Cursor is the cursor cell plus the page it sits on.
type Cursor struct {
	X     int
	Y     int
	Level int
}

type item struct {
	element Element
	// line is the index within the displayable elements, -1 for whole screen elements.
	line int
}

type Menu struct {
	name            string
	build           Builder
	items           []item
	displayable     []Element
	zone            selection.Zone
	autoZone        bool
	cursor          Cursor
	blink           blinker
	glyph           rune
	enforceMaxLines bool
	forceUpdate     bool
	interrupted     bool
	payload         Payload
	registry        *event.Registry
}

type Opt func(*Menu)

func WithBlinkSpeed(speed time.Duration) Opt {
	return func(m *Menu) {
		m.blink.speed = speed
	}
}

// WithBlinkDisabled keeps the cursor glyph hidden.
func WithBlinkDisabled() Opt {
	return func(m *Menu) {
		m.blink.enabled = false
	}
}

func WithGlyph(glyph rune) Opt {
	return func(m *Menu) {
		m.glyph = glyph
	}
}

// WithoutMaxLines renders every line at once instead of paging by telemetry.MaxLinesPerScreen.
func WithoutMaxLines() Opt {
	return func(m *Menu) {
		m.enforceMaxLines = false
	}
}

// WithRegistry sets the table used to prefilter events for Kinded elements.
func WithRegistry(registry *event.Registry) Opt {
	return func(m *Menu) {
		m.registry = registry
	}
}

func New(name string, build Builder, opts ...Opt) *Menu {
	menu := &Menu{
		name:            name,
		build:           build,
		glyph:           DefaultGlyph,
		enforceMaxLines: true,
		autoZone:        true,
		registry:        event.Default,
		blink:           blinker{enabled: true, speed: DefaultBlinkSpeed},
	}

	for _, opt := range opts {
		opt(menu)
	}

	return menu
}

func (m *Menu) Name() string {
	return m.name
}

// Init clears the menu, resets the cursor to the origin and runs the builder with the payload.
// When the origin is not selectable the cursor is then moved to the first selectable cell in
// reading order, so a freshly shown menu never has its cursor on a dead cell.
func (m *Menu) Init(payload Payload) {
	m.items = nil
	m.displayable = nil
	m.zone = selection.Zero()
	m.autoZone = true
	m.cursor = Cursor{}
	m.payload = payload
	m.forceUpdate = true

	if m.build != nil {
		m.build(m, payload)
	}

	m.snapCursor()

	slog.Debug("Menu initialized", slog.String("menu", m.name),
		slog.Int("elements", len(m.items)), slog.Int("lines", len(m.displayable)))
}

// Payload returns the payload given to the last Init.
func (m *Menu) Payload() Payload {
	return m.payload
}

// AddItem appends an element. Until a zone is set explicitly, every displayable element grows the
// zone by a single selectable cell at the start of its line.
func (m *Menu) AddItem(element Element) {
	line := -1
	if renders, ok := element.(Renders); ok {
		if _, visible := renders.Text(); visible {
			line = len(m.displayable)
			m.displayable = append(m.displayable, element)
			if m.autoZone {
				m.zone.AddRow([]bool{true})
			}
		}
	}

	m.warnUndeclared(element)
	m.items = append(m.items, item{element: element, line: line})
}

// warnUndeclared logs criteria types the registry will filter out before they reach the element.
func (m *Menu) warnUndeclared(element Element) {
	listener, isListener := element.(Listens)
	kinded, isKinded := element.(Kinded)
	if !isListener || !isKinded || m.registry == nil {
		return
	}

	for _, evtType := range listener.Criteria().Types() {
		if evtType != event.Any && !m.registry.Handles(kinded.Kind(), evtType) {
			slog.Debug("Event type not declared for element kind", slog.String("menu", m.name),
				slog.String("kind", kinded.Kind()), slog.String("type", evtType.String()))
		}
	}
}

func (m *Menu) AddItems(elements ...Element) {
	for _, element := range elements {
		m.AddItem(element)
	}
}

// SetSelectionZone replaces the zone. Later AddItem calls no longer grow it.
func (m *Menu) SetSelectionZone(zone selection.Zone) {
	m.zone = zone.Clone()
	m.autoZone = false
	m.snapCursor()
}

// SelectionZone returns a copy of the active zone.
func (m *Menu) SelectionZone() selection.Zone {
	return m.zone.Clone()
}

func (m *Menu) Cursor() Cursor {
	return m.cursor
}

// Elements returns every element in insertion order.
func (m *Menu) Elements() []Element {
	out := make([]Element, len(m.items))
	for idx, it := range m.items {
		out[idx] = it.element
	}

	return out
}

// Displayable returns the elements that occupy a line.
func (m *Menu) Displayable() []Element {
	out := make([]Element, len(m.displayable))
	copy(out, m.displayable)

	return out
}

// Line returns the current text of a displayable line.
func (m *Menu) Line(y int) (string, bool) {
	if y < 0 || y >= len(m.displayable) {
		return "", false
	}

	text, _ := m.displayable[y].(Renders).Text()

	return text, true
}

// Focused returns the element under the cursor.
func (m *Menu) Focused() (Element, bool) {
	if m.zone.IsZero() || m.cursor.Y >= len(m.displayable) {
		return nil, false
	}

	return m.displayable[m.cursor.Y], true
}

// ForceCursorUpdate lights the cursor and restarts its blink timer on the next render.
func (m *Menu) ForceCursorUpdate() {
	m.forceUpdate = true
}

// ForceUpdatePending reports whether a forced cursor update is waiting for the next render.
func (m *Menu) ForceUpdatePending() bool {
	return m.forceUpdate
}

func (m *Menu) BlinkSpeed() time.Duration {
	return m.blink.speed
}

func (m *Menu) SetBlinkSpeed(speed time.Duration) {
	m.blink.speed = speed
}

func (m *Menu) SetBlinkEnabled(enabled bool) {
	m.blink.enabled = enabled
}

func (m *Menu) BlinkState() BlinkState {
	return m.blink.state
}

// Interrupt stops the listener pass in progress, used when a listener navigates away.
func (m *Menu) Interrupt() {
	m.interrupted = true
}

// UpdateListeners delivers the frame's events to the whole screen elements and to the element on
// the cursor line, then ticks them. It reports whether any of them requested a forced cursor
// update, which is never the case while the zone is empty.
func (m *Menu) UpdateListeners(ctx Context, events []event.Event) bool {
	ctx.Menu = m
	ctx.Cursor = m.cursor
	m.interrupted = false
	force := false

	// Listeners may add elements, so work on a snapshot.
	items := make([]item, len(m.items))
	copy(items, m.items)

	for _, it := range items {
		if m.interrupted {
			break
		}

		// Focus is the line under the cursor when the pass started, even if a listener moves it.
		if it.line >= 0 && it.line != ctx.Cursor.Y {
			continue
		}

		if m.deliver(ctx, it.element, events) {
			force = true
		}
	}

	if m.zone.IsZero() {
		return false
	}

	return force
}

func (m *Menu) deliver(ctx Context, element Element, events []event.Event) bool {
	force := false
	if listener, ok := element.(Listens); ok {
		packet := listener.Criteria()
		kind := ""
		if kinded, isKinded := element.(Kinded); isKinded {
			kind = kinded.Kind()
		}

		for _, evt := range events {
			if kind != "" && m.registry != nil && !m.registry.Handles(kind, evt.Type) {
				continue
			}

			if !packet.Satisfied(evt) {
				continue
			}

			if listener.OnEvent(ctx, evt) {
				force = true
			}

			if m.interrupted {
				return force
			}
		}
	}

	if ticker, ok := element.(Ticks); ok {
		if ticker.Tick(ctx) {
			force = true
		}
	}

	return force
}

// Render advances the blink state and writes the visible page of lines to the sink.
func (m *Menu) Render(now time.Time, sink telemetry.Sink) {
	m.blink.advance(now, m.forceUpdate)
	m.forceUpdate = false

	start, end := m.window()
	lit := m.blink.state == BlinkOn && !m.zone.IsZero()
	for y := start; y < end; y++ {
		element := m.displayable[y]
		if blinks, ok := element.(Blinks); ok {
			blinks.SetBlink(m.blink.state == BlinkOn)
		}

		text, _ := element.(Renders).Text()
		if lit && y == m.cursor.Y {
			text = replaceRune(text, m.cursor.X, m.glyph)
		}

		sink.AddLine(text)
	}

	sink.Update()
}

// window returns the range of displayable lines on the cursor's page.
func (m *Menu) window() (int, int) {
	if !m.enforceMaxLines {
		return 0, len(m.displayable)
	}

	start := m.cursor.Level * telemetry.MaxLinesPerScreen

	return min(start, len(m.displayable)), min(len(m.displayable), start+telemetry.MaxLinesPerScreen)
}

func replaceRune(text string, index int, glyph rune) string {
	if index < 0 || index >= utf8.RuneCountInString(text) {
		return text
	}

	runes := []rune(text)
	runes[index] = glyph

	return string(runes)
}
