package term_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/leighmacdonald/halgui/internal/config"
	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/gui"
	"github.com/leighmacdonald/halgui/internal/menu"
	"github.com/leighmacdonald/halgui/internal/term"
	"github.com/stretchr/testify/require"
)

// mockScreen is a minimal mock for tcell.Screen recording drawn cells.
type mockScreen struct {
	tcell.Screen
	width, height int
	cells         map[[2]int]rune
	shows         int
	events        chan tcell.Event
	done          chan struct{}
}

func newMockScreen() *mockScreen {
	return &mockScreen{
		width:  40,
		height: 12,
		cells:  map[[2]int]rune{},
		events: make(chan tcell.Event, 8),
		done:   make(chan struct{}),
	}
}

func (m *mockScreen) Size() (int, int) { return m.width, m.height }
func (m *mockScreen) Show()            { m.shows++ }
func (m *mockScreen) Sync()            {}
func (m *mockScreen) Fini()            { close(m.done) }

func (m *mockScreen) SetContent(x, y int, mainc rune, _ []rune, _ tcell.Style) {
	m.cells[[2]int{x, y}] = mainc
}

func (m *mockScreen) PollEvent() tcell.Event {
	select {
	case ev := <-m.events:
		return ev
	case <-m.done:
		return nil
	}
}

func (m *mockScreen) row(y int) string {
	var out strings.Builder
	for x := range m.width {
		if char, found := m.cells[[2]int{x, y}]; found {
			out.WriteRune(char)
		}
	}

	return strings.TrimRight(out.String(), " ")
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fixture struct {
	screen *mockScreen
	clock  *fakeClock
	gui    *gui.GUI
	runner *term.Runner
	sink   *term.ScreenSink
	pad    *gamepad.KeyboardPad
}

func newFixture() *fixture {
	screen := newMockScreen()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	pad := gamepad.NewKeyboardPad(clock.Now, 50*time.Millisecond)
	sink := term.NewScreenSink(screen, 2)
	host := gui.New(sink, pad, gui.WithClock(clock))

	return &fixture{
		screen: screen,
		clock:  clock,
		gui:    host,
		sink:   sink,
		pad:    pad,
		runner: term.NewRunner(screen, host, pad, config.DefaultBindings(), time.Millisecond),
	}
}

func (f *fixture) frame(t *testing.T, d time.Duration) {
	t.Helper()
	f.clock.now = f.clock.now.Add(d)
	require.NoError(t, f.runner.Frame(context.Background()))
}

func TestKeyName(t *testing.T) {
	for _, tc := range []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), "k"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModShift), "shift+down"},
		{tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), ""},
	} {
		require.Equal(t, tc.want, term.KeyName(tc.ev))
	}
}

func TestScreenSinkClearsStaleRows(t *testing.T) {
	screen := newMockScreen()
	sink := term.NewScreenSink(screen, 1)

	sink.AddLine("one")
	sink.AddLine("two")
	sink.Update()
	require.Equal(t, "one", screen.row(1))
	require.Equal(t, "two", screen.row(2))

	sink.AddLine("three")
	sink.Update()
	require.Equal(t, "three", screen.row(1))
	require.Empty(t, screen.row(2))
	require.Equal(t, 2, screen.shows)
}

func TestRunnerFrames(t *testing.T) {
	f := newFixture()
	child := menu.New("child", func(m *menu.Menu, _ menu.Payload) {
		m.AddItem(menu.NewText("inside"))
	})
	root := menu.New("root", func(m *menu.Menu, _ menu.Payload) {
		m.AddItems(
			menu.NewText("first"),
			menu.NewButton("open", gamepad.OnClick(gamepad.Pad1(gamepad.A)), func(ctx menu.Context, _ event.Event) bool {
				ctx.Nav.Inflate(child, nil)

				return true
			}),
		)
	})
	f.gui.AddRootMenu(root, gui.DefaultControls())

	f.frame(t, 10*time.Millisecond)
	require.Equal(t, "[root] root depth 1", f.screen.row(0))
	require.Equal(t, "█irst", f.screen.row(2))
	require.Equal(t, "open", f.screen.row(3))

	require.True(t, f.runner.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	f.frame(t, 10*time.Millisecond)
	require.Equal(t, 1, root.Cursor().Y)
	require.Equal(t, "first", f.screen.row(2))
	require.Equal(t, "█pen", f.screen.row(3))

	f.frame(t, 100*time.Millisecond)
	require.True(t, f.runner.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	f.frame(t, 10*time.Millisecond)
	require.Same(t, child, f.gui.CurrentMenu())
	require.Equal(t, "[root] child depth 2", f.screen.row(0))
	require.Equal(t, "█nside", f.screen.row(2))
	require.Empty(t, f.screen.row(3))
	require.Contains(t, f.screen.row(11), "click gamepad1_a")

	require.False(t, f.runner.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture()
	f.gui.AddRootMenu(menu.New("root", func(m *menu.Menu, _ menu.Payload) {
		m.AddItem(menu.NewText("root"))
	}), gui.DefaultControls())

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- f.runner.Run(ctx) }()

	cancel()
	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	f := newFixture()
	f.screen.events <- tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	errs := make(chan error, 1)
	go func() { errs <- f.runner.Run(context.Background()) }()

	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit key")
	}
}

func TestRunAppliesConfigUpdates(t *testing.T) {
	f := newFixture()
	f.gui.AddRootMenu(menu.New("root", func(m *menu.Menu, _ menu.Payload) {
		m.AddItem(menu.NewText("root"))
	}), gui.DefaultControls())

	updates := make(chan config.Config)
	f.runner.SetConfigUpdates(updates)

	errs := make(chan error, 1)
	go func() { errs <- f.runner.Run(context.Background()) }()

	conf := config.Config{FPS: 60, BlinkMs: 900, HoldRepeatMs: 400, KeyReleaseMs: 100}
	updates <- conf
	f.screen.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-errs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit key")
	}

	require.Equal(t, 900*time.Millisecond, f.gui.BlinkSpeed())
	require.Equal(t, 400*time.Millisecond, f.gui.Generator().HoldInterval())
}

func TestFocusLossReleasesKeys(t *testing.T) {
	f := newFixture()
	require.True(t, f.runner.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
	require.True(t, f.pad.Button(gamepad.Pad1(gamepad.A)))

	require.True(t, f.runner.HandleEvent(tcell.NewEventFocus(true)))
	require.True(t, f.pad.Button(gamepad.Pad1(gamepad.A)))

	require.True(t, f.runner.HandleEvent(tcell.NewEventFocus(false)))
	require.False(t, f.pad.Button(gamepad.Pad1(gamepad.A)))
}
