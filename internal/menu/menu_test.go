package menu_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/menu"
	"github.com/leighmacdonald/halgui/internal/selection"
	"github.com/leighmacdonald/halgui/internal/telemetry"
	"github.com/stretchr/testify/require"
)

var selectButton = gamepad.Pad1(gamepad.A) //nolint:gochecknoglobals

func click(button gamepad.Button) event.Event {
	return event.New(event.Click, event.DefaultPriority, gamepad.ButtonData{Button: button, New: true})
}

// gridMenu builds a menu with one text line per row, each wide enough for the zone.
func gridMenu(zone selection.Zone, lines int) *menu.Menu {
	m := menu.New("grid", func(m *menu.Menu, _ menu.Payload) {
		for y := range lines {
			m.AddItem(menu.NewText(fmt.Sprintf("line %02d....", y)))
		}
		m.SetSelectionZone(zone)
	})
	m.Init(nil)

	return m
}

func pos(m *menu.Menu) [2]int {
	return [2]int{m.Cursor().X, m.Cursor().Y}
}

func TestCursorDownScenario(t *testing.T) {
	m := gridMenu(selection.FromInts([][]int{{1, 0, 1}, {0, 1, 0}}), 2)
	require.Equal(t, [2]int{0, 0}, pos(m))
	require.True(t, m.CursorDown())
	require.Equal(t, [2]int{1, 1}, pos(m))
}

func TestCursorEdgesDoNotMove(t *testing.T) {
	m := gridMenu(selection.New(3, 3), 3)
	require.False(t, m.CursorUp())
	require.Equal(t, [2]int{0, 0}, pos(m))
	require.False(t, m.CursorLeft())

	require.True(t, m.CursorDown())
	require.True(t, m.CursorDown())
	require.False(t, m.CursorDown())
	require.Equal(t, [2]int{0, 2}, pos(m))
}

func TestCursorUpSkipsMaskedRows(t *testing.T) {
	zone := selection.FromInts([][]int{
		{0, 0, 0, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{1, 0, 0, 0},
	})
	m := gridMenu(zone, 4)
	require.Equal(t, [2]int{3, 0}, pos(m), "cursor snaps to the first selectable cell")
	require.True(t, m.CursorDown())
	require.Equal(t, [2]int{0, 3}, pos(m))
	require.True(t, m.CursorUp())
	require.Equal(t, [2]int{3, 0}, pos(m))
	require.False(t, m.CursorUp())
}

func TestTieBreakPrefersLeft(t *testing.T) {
	zone := selection.FromInts([][]int{
		{0, 1, 0, 1, 0},
		{0, 0, 1, 0, 0},
	})
	m := gridMenu(zone, 2)
	require.NoError(t, m.SetCursorPos(2, 1))
	require.True(t, m.CursorUp())
	require.Equal(t, [2]int{1, 0}, pos(m))
}

func TestNearestRowWins(t *testing.T) {
	zone := selection.FromInts([][]int{
		{1, 0, 0, 0, 0},
		{0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0},
	})
	m := gridMenu(zone, 3)
	require.Equal(t, [2]int{0, 0}, pos(m))
	// Row 1 is closer even though (0, 2) has the smaller taxicab distance.
	require.True(t, m.CursorDown())
	require.Equal(t, [2]int{4, 1}, pos(m))
}

func TestCursorLeftRight(t *testing.T) {
	zone := selection.FromInts([][]int{{1, 0, 1, 1, 0, 1}})
	m := gridMenu(zone, 1)
	require.True(t, m.CursorRight())
	require.Equal(t, [2]int{2, 0}, pos(m))
	require.True(t, m.CursorRight())
	require.True(t, m.CursorRight())
	require.Equal(t, [2]int{5, 0}, pos(m))
	require.False(t, m.CursorRight())
	require.True(t, m.CursorLeft())
	require.Equal(t, [2]int{3, 0}, pos(m))
}

func TestLineLengthLimitsCursor(t *testing.T) {
	m := menu.New("short", func(m *menu.Menu, _ menu.Payload) {
		m.AddItems(menu.NewText("abcdef"), menu.NewText("ab"))
		m.SetSelectionZone(selection.New(6, 2))
	})
	m.Init(nil)
	require.NoError(t, m.SetCursorPos(5, 0))
	require.True(t, m.CursorDown())
	require.Equal(t, [2]int{1, 1}, pos(m))
	require.False(t, m.CursorRight())
	require.ErrorIs(t, m.SetCursorPos(4, 1), menu.ErrInvalidCursor)
}

func TestZeroZoneShortCircuits(t *testing.T) {
	m := menu.New("empty", func(m *menu.Menu, _ menu.Payload) {
		m.AddItem(menu.NewText("hello"))
		m.SetSelectionZone(selection.Zero())
	})
	m.Init(nil)
	require.False(t, m.CursorDown())
	require.False(t, m.CursorRight())
	require.False(t, m.CursorUp())
	require.False(t, m.CursorLeft())
	_, focused := m.Focused()
	require.False(t, focused)
}

func TestAutoZoneGrowsWithLines(t *testing.T) {
	m := menu.New("auto", func(m *menu.Menu, _ menu.Payload) {
		m.AddItems(menu.NewText("one"), menu.NewGlobalButton(gamepad.OnClick(), nil), menu.NewText("two"))
	})
	m.Init(nil)
	zone := m.SelectionZone()
	require.Equal(t, 1, zone.Width())
	require.Equal(t, 2, zone.Height())
	require.Len(t, m.Elements(), 3)
	require.Len(t, m.Displayable(), 2)

	m.AddItem(menu.NewText("three"))
	require.Equal(t, 3, m.SelectionZone().Height())
	require.True(t, m.CursorDown())
	require.True(t, m.CursorDown())
	require.Equal(t, [2]int{0, 2}, pos(m))
}

func TestPagination(t *testing.T) {
	m := gridMenu(selection.New(1, 10), 10)
	for range 8 {
		require.True(t, m.CursorDown())
	}
	require.Equal(t, 8, m.Cursor().Y)
	require.Equal(t, 1, m.Cursor().Level)

	buffer := telemetry.NewBuffer()
	m.Render(time.Now(), buffer)
	require.Equal(t, []string{"█ine 08....", "line 09...."}, buffer.Lines())

	require.True(t, m.CursorUp())
	require.Equal(t, 0, m.Cursor().Level)
	m.Render(time.Now(), buffer)
	require.Len(t, buffer.Lines(), telemetry.MaxLinesPerScreen)
}

func TestWithoutMaxLines(t *testing.T) {
	m := menu.New("all", func(m *menu.Menu, _ menu.Payload) {
		for y := range 10 {
			m.AddItem(menu.NewText(fmt.Sprintf("%d", y)))
		}
	}, menu.WithoutMaxLines())
	m.Init(nil)
	require.NoError(t, m.SetCursorPos(0, 9))
	require.Equal(t, 0, m.Cursor().Level)

	buffer := telemetry.NewBuffer()
	m.Render(time.Now(), buffer)
	require.Len(t, buffer.Lines(), 10)
}

func TestBlink(t *testing.T) {
	m := menu.New("blink", func(m *menu.Menu, _ menu.Payload) {
		m.AddItem(menu.NewText("abc"))
	}, menu.WithBlinkSpeed(100*time.Millisecond), menu.WithGlyph('#'))
	m.Init(nil)

	buffer := telemetry.NewBuffer()
	start := time.Now()
	frames := []struct {
		at   time.Duration
		want string
	}{
		{0, "#bc"},
		{50 * time.Millisecond, "#bc"},
		{100 * time.Millisecond, "abc"},
		{150 * time.Millisecond, "abc"},
		{200 * time.Millisecond, "#bc"},
	}

	for idx, frame := range frames {
		m.Render(start.Add(frame.at), buffer)
		require.Equal(t, []string{frame.want}, buffer.Lines(), fmt.Sprintf("frame %d", idx))
	}

	// Forcing an update relights the cursor and restarts the timer.
	m.Render(start.Add(300*time.Millisecond), buffer)
	require.Equal(t, menu.BlinkOff, m.BlinkState())
	m.ForceCursorUpdate()
	m.Render(start.Add(310*time.Millisecond), buffer)
	require.Equal(t, []string{"#bc"}, buffer.Lines())
	m.Render(start.Add(400*time.Millisecond), buffer)
	require.Equal(t, []string{"#bc"}, buffer.Lines())

	m.SetBlinkEnabled(false)
	m.ForceCursorUpdate()
	m.Render(start.Add(500*time.Millisecond), buffer)
	require.Equal(t, []string{"abc"}, buffer.Lines())
	require.Equal(t, menu.BlinkOff, m.BlinkState())
}

func TestUpdateListenersFocus(t *testing.T) {
	var fired []string
	record := func(name string) menu.Action {
		return func(_ menu.Context, _ event.Event) bool {
			fired = append(fired, name)

			return true
		}
	}

	m := menu.New("buttons", func(m *menu.Menu, _ menu.Payload) {
		m.AddItems(
			menu.NewButton("first", gamepad.OnClick(selectButton), record("first")),
			menu.NewGlobalButton(gamepad.OnClick(gamepad.Pad1(gamepad.B)), record("global")),
			menu.NewButton("second", gamepad.OnClick(selectButton), record("second")),
		)
	})
	m.Init(nil)

	require.True(t, m.UpdateListeners(menu.Context{}, []event.Event{click(selectButton)}))
	require.Equal(t, []string{"first"}, fired)

	require.True(t, m.CursorDown())
	fired = nil
	m.UpdateListeners(menu.Context{}, []event.Event{click(selectButton), click(gamepad.Pad1(gamepad.B))})
	require.Equal(t, []string{"global", "second"}, fired)

	fired = nil
	require.False(t, m.UpdateListeners(menu.Context{}, []event.Event{click(gamepad.Pad1(gamepad.X))}))
	require.Empty(t, fired)
}

func TestUpdateListenersZeroZone(t *testing.T) {
	fired := 0
	m := menu.New("splash", func(m *menu.Menu, _ menu.Payload) {
		m.AddItem(menu.NewGlobalButton(gamepad.OnClick(), func(_ menu.Context, _ event.Event) bool {
			fired++

			return true
		}))
	})
	m.Init(nil)
	require.True(t, m.SelectionZone().IsZero())
	require.False(t, m.UpdateListeners(menu.Context{}, []event.Event{click(selectButton)}))
	require.Equal(t, 1, fired)
}

func TestCellButtonAndEntryField(t *testing.T) {
	field := menu.NewEntryField("Name: ", "", 4).EraseOn(gamepad.OnClick(gamepad.Pad1(gamepad.B)))
	keys := menu.NewCellButton("ABCD", gamepad.OnClick(selectButton), func(ctx menu.Context, _ event.Event, column int) bool {
		row, _ := ctx.Menu.Focused()

		return field.Append(row.(*menu.CellButton).Cell(column))
	})

	m := menu.New("keyboard", func(m *menu.Menu, _ menu.Payload) {
		m.AddItems(field, keys)
		m.SetSelectionZone(selection.FromInts([][]int{{0}, {1, 1, 1, 1}}))
	})
	m.Init(nil)
	require.Equal(t, [2]int{0, 1}, pos(m))

	m.UpdateListeners(menu.Context{}, []event.Event{click(selectButton)})
	require.True(t, m.CursorRight())
	require.True(t, m.CursorRight())
	m.UpdateListeners(menu.Context{}, []event.Event{click(selectButton)})
	require.Equal(t, "AC", field.Value())

	field.SetBlink(true)
	text, _ := field.Text()
	require.Equal(t, "Name: AC_", text)

	require.True(t, field.Append('x'))
	require.True(t, field.Append('y'))
	require.False(t, field.Append('z'))
	require.True(t, field.Full())
	text, _ = field.Text()
	require.Equal(t, "Name: ACxy ", text)

	require.True(t, field.OnEvent(menu.Context{}, click(gamepad.Pad1(gamepad.B))))
	require.Equal(t, "ACx", field.Value())
	field.Clear()
	require.False(t, field.Backspace())
	require.Equal(t, rune(0), keys.Cell(9))
}

func TestInitResetsAndPayload(t *testing.T) {
	builds := 0
	m := menu.New("payload", func(m *menu.Menu, payload menu.Payload) {
		builds++
		title, ok := menu.Get[string](payload, "title")
		if !ok {
			title = "untitled"
		}
		m.AddItems(menu.NewText(title), menu.NewText("second"))
	})

	m.Init(menu.NewPayload().With("title", "hello"))
	require.NoError(t, m.SetCursorPos(0, 1))
	line, _ := m.Line(0)
	require.Equal(t, "hello", line)
	require.True(t, m.Payload().Has("title"))

	m.Init(nil)
	require.Equal(t, [2]int{0, 0}, pos(m))
	line, _ = m.Line(0)
	require.Equal(t, "untitled", line)
	require.Equal(t, 2, builds)
	require.Len(t, m.Elements(), 2)

	_, wrongType := menu.Get[int](menu.Payload{}.With("title", "x"), "title")
	require.False(t, wrongType)
}

func TestListenerMovingCursorKeepsFocus(t *testing.T) {
	var fired []string
	m := menu.New("buttons", func(m *menu.Menu, _ menu.Payload) {
		m.AddItems(
			menu.NewButton("one", event.On(event.Click), func(ctx menu.Context, _ event.Event) bool {
				fired = append(fired, "one")

				return ctx.Menu.CursorDown()
			}),
			menu.NewButton("two", event.On(event.Click), func(_ menu.Context, _ event.Event) bool {
				fired = append(fired, "two")

				return true
			}),
		)
	})
	m.Init(nil)

	require.True(t, m.UpdateListeners(menu.Context{}, []event.Event{click(selectButton)}))
	require.Equal(t, []string{"one"}, fired)
	require.Equal(t, 1, m.Cursor().Y)

	fired = nil
	m.UpdateListeners(menu.Context{}, []event.Event{click(selectButton)})
	require.Equal(t, []string{"two"}, fired)
}

func TestCustomTypeNeedsDeclaration(t *testing.T) {
	registry := event.NewRegistry()
	registry.Declare(menu.KindButton, event.Click)
	custom, errRegister := registry.Register("custom")
	require.NoError(t, errRegister)

	fired := 0
	m := menu.New("custom", func(m *menu.Menu, _ menu.Payload) {
		m.AddItem(menu.NewButton("go", event.On(custom), func(_ menu.Context, _ event.Event) bool {
			fired++

			return true
		}))
	}, menu.WithRegistry(registry))
	m.Init(nil)

	m.UpdateListeners(menu.Context{}, []event.Event{event.New(custom, event.DefaultPriority, nil)})
	require.Zero(t, fired)

	registry.Declare(menu.KindButton, custom)
	m.UpdateListeners(menu.Context{}, []event.Event{event.New(custom, event.DefaultPriority, nil)})
	require.Equal(t, 1, fired)
}

func TestSelectionZoneOwnedByMenu(t *testing.T) {
	zone := selection.New(3, 2)
	m := gridMenu(zone, 2)

	require.NoError(t, zone.SetValue(0, 1, false))
	returned := m.SelectionZone()
	require.NoError(t, returned.SetValue(1, 1, false))

	require.NoError(t, m.SetCursorPos(0, 1))
	require.NoError(t, m.SetCursorPos(1, 1))
}
