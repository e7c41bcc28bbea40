package menu

import (
	"unicode/utf8"

	"github.com/leighmacdonald/halgui/internal/event"
)

const (
	KindButton       = "button"
	KindGlobalButton = "global_button"
	KindCellButton   = "cell_button"
	KindEntryField   = "entry_field"
)

func init() { //nolint:gochecknoinits
	event.Default.Declare(KindButton, event.Click, event.Release, event.Hold)
	event.Default.Declare(KindGlobalButton, event.Click, event.Release, event.Hold)
	event.Default.Declare(KindCellButton, event.Click, event.Hold)
	event.Default.Declare(KindEntryField, event.Click, event.Hold)
}

// Action runs when a button's criteria match. Returning true requests a forced cursor update.
type Action func(ctx Context, evt event.Event) bool

// Text is a static line.
type Text struct {
	text string
}

func NewText(text string) *Text {
	return &Text{text: text}
}

func (t *Text) Text() (string, bool) {
	return t.text, true
}

func (t *Text) SetText(text string) {
	t.text = text
}

// Button is a line that runs its action when focused and its criteria match.
type Button struct {
	Text
	packet event.Packet
	action Action
}

// NewButton creates a line button. Events reach it only if their type is declared for
// KindButton in the menu's registry, so a custom type needs a Declare before criteria on it fire.
func NewButton(text string, criteria event.Criteria, action Action) *Button {
	return &Button{Text: Text{text: text}, packet: event.NewPacket(criteria), action: action}
}

// On adds more criteria triggering the same action.
func (b *Button) On(criteria ...event.Criteria) *Button {
	b.packet = b.packet.Add(criteria...)

	return b
}

func (b *Button) Kind() string {
	return KindButton
}

func (b *Button) Criteria() event.Packet {
	return b.packet
}

func (b *Button) OnEvent(ctx Context, evt event.Event) bool {
	if b.action == nil {
		return false
	}

	return b.action(ctx, evt)
}

// GlobalButton has no line. Its action runs regardless of where the cursor is.
type GlobalButton struct {
	packet event.Packet
	action Action
}

func NewGlobalButton(criteria event.Criteria, action Action) *GlobalButton {
	return &GlobalButton{packet: event.NewPacket(criteria), action: action}
}

func (b *GlobalButton) Text() (string, bool) {
	return "", false
}

func (b *GlobalButton) Kind() string {
	return KindGlobalButton
}

func (b *GlobalButton) Criteria() event.Packet {
	return b.packet
}

func (b *GlobalButton) OnEvent(ctx Context, evt event.Event) bool {
	if b.action == nil {
		return false
	}

	return b.action(ctx, evt)
}

// CellAction receives the column the cursor was on.
type CellAction func(ctx Context, evt event.Event, column int) bool

// CellButton is a line where every character is its own button, such as a keyboard row.
type CellButton struct {
	Text
	packet event.Packet
	action CellAction
}

func NewCellButton(text string, criteria event.Criteria, action CellAction) *CellButton {
	return &CellButton{Text: Text{text: text}, packet: event.NewPacket(criteria), action: action}
}

func (b *CellButton) Kind() string {
	return KindCellButton
}

func (b *CellButton) Criteria() event.Packet {
	return b.packet
}

func (b *CellButton) OnEvent(ctx Context, evt event.Event) bool {
	if b.action == nil {
		return false
	}

	return b.action(ctx, evt, ctx.Cursor.X)
}

// Cell returns the rune in the given column, or zero outside the text.
func (b *CellButton) Cell(column int) rune {
	runes := []rune(b.text)
	if column < 0 || column >= len(runes) {
		return 0
	}

	return runes[column]
}

// EntryField is a labelled editable value drawn with a blinking caret. Its own criteria, when
// set, erase the last character while it is focused.
type EntryField struct {
	label     string
	value     []rune
	maxLength int
	caret     bool
	packet    event.Packet
}

func NewEntryField(label string, value string, maxLength int) *EntryField {
	field := &EntryField{label: label, maxLength: maxLength}
	field.SetValue(value)

	return field
}

// EraseOn sets the criteria that trigger a backspace.
func (e *EntryField) EraseOn(criteria ...event.Criteria) *EntryField {
	e.packet = event.NewPacket(criteria...)

	return e
}

func (e *EntryField) Text() (string, bool) {
	caret := " "
	if e.caret && !e.Full() {
		caret = "_"
	}

	return e.label + string(e.value) + caret, true
}

// SetText replaces the value; the label is kept.
func (e *EntryField) SetText(text string) {
	e.SetValue(text)
}

func (e *EntryField) SetBlink(on bool) {
	e.caret = on
}

func (e *EntryField) Kind() string {
	return KindEntryField
}

func (e *EntryField) Criteria() event.Packet {
	return e.packet
}

func (e *EntryField) OnEvent(_ Context, _ event.Event) bool {
	return e.Backspace()
}

func (e *EntryField) Value() string {
	return string(e.value)
}

func (e *EntryField) SetValue(value string) {
	e.value = []rune(value)
	if e.maxLength > 0 && len(e.value) > e.maxLength {
		e.value = e.value[:e.maxLength]
	}
}

// Full reports whether the value reached its maximum length.
func (e *EntryField) Full() bool {
	return e.maxLength > 0 && len(e.value) >= e.maxLength
}

// Append adds a character, returning false when the field is full.
func (e *EntryField) Append(char rune) bool {
	if e.Full() || !utf8.ValidRune(char) {
		return false
	}

	e.value = append(e.value, char)

	return true
}

// Backspace removes the last character.
func (e *EntryField) Backspace() bool {
	if len(e.value) == 0 {
		return false
	}

	e.value = e.value[:len(e.value)-1]

	return true
}

func (e *EntryField) Clear() {
	e.value = nil
}
