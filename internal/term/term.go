package term

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/leighmacdonald/halgui/internal/config"
	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/gui"
	"github.com/leighmacdonald/halgui/internal/telemetry"
)

const (
	headerRow = 0
	FrameTop  = 2
	statusRow = FrameTop + telemetry.MaxLinesPerScreen + 1
)

var keyNames = map[tcell.Key]string{ //nolint:gochecknoglobals
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyTab:        "tab",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdown",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyDelete:     "delete",
	tcell.KeyCtrlC:      "ctrl+c",
	tcell.KeyCtrlF:      "ctrl+f",
}

// KeyName converts a key event to the names used in key binding files.
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "space"
		}

		return string(ev.Rune())
	}

	name, found := keyNames[ev.Key()]
	if !found {
		return ""
	}

	if ev.Modifiers()&tcell.ModShift != 0 {
		return "shift+" + name
	}

	return name
}

// Runner owns the tcell screen and steps the gui once per frame.
type Runner struct {
	screen   tcell.Screen
	gui      *gui.GUI
	pad      *gamepad.KeyboardPad
	keys     config.KeyMap
	interval time.Duration
	last     event.Event
	hasLast  bool
	header   string
	status   string
	updates  <-chan config.Config
}

// NewRunner expects host to render into a ScreenSink on the same screen and pad to be its source.
func NewRunner(screen tcell.Screen, host *gui.GUI, pad *gamepad.KeyboardPad, bindings []config.Binding, interval time.Duration) *Runner {
	runner := &Runner{
		screen:   screen,
		gui:      host,
		pad:      pad,
		keys:     config.NewKeyMap(bindings),
		interval: max(time.Millisecond, interval),
	}

	host.Listen(event.Any, func(evt event.Event) {
		runner.last = evt
		runner.hasLast = true
	})

	return runner
}

// SetConfigUpdates makes Run apply reloaded configs between frames.
func (r *Runner) SetConfigUpdates(updates <-chan config.Config) {
	r.updates = updates
}

func (r *Runner) applyConfig(conf config.Config) {
	r.pad.SetWindow(conf.ReleaseWindow())
	r.gui.SetBlinkSpeed(conf.BlinkSpeed())
	r.gui.Generator().SetHoldInterval(conf.HoldInterval())
	r.interval = max(time.Millisecond, conf.FrameInterval())
}

// HandleEvent applies a screen event, returning false when the user asked to quit.
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		name := KeyName(ev)
		switch name {
		case "q", "ctrl+c":
			return false
		case "ctrl+f":
			r.gui.Forward(nil)

			return true
		}

		if button, found := r.keys.Button(name); found {
			r.pad.Press(button)
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			r.pad.ReleaseAll()
		}
	case *tcell.EventResize:
		r.screen.Sync()
		r.header = ""
		r.gui.Render(true)
	}

	return true
}

// Frame steps the gui and redraws the header and status rows when they changed.
func (r *Runner) Frame(ctx context.Context) error {
	if err := r.gui.Step(ctx); err != nil {
		return err
	}

	width, _ := r.screen.Size()
	changed := false

	if header := r.headerText(); header != r.header {
		r.header = header
		drawRow(r.screen, headerRow, width, header, styleHeader)
		changed = true
	}

	if status := r.statusText(); status != r.status {
		r.status = status
		drawRow(r.screen, statusRow, width, status, styleStatus)
		changed = true
	}

	if changed {
		r.screen.Show()
	}

	return nil
}

func (r *Runner) headerText() string {
	tree := r.gui.CurrentTree()
	if tree == nil {
		return "halgui"
	}

	return fmt.Sprintf("[%s] %s depth %d", tree.Name(), tree.Current().Name(), tree.Depth())
}

func (r *Runner) statusText() string {
	if !r.hasLast {
		return "q quit"
	}

	return fmt.Sprintf("q quit  last: %s %v", r.last.Type, r.last.Data)
}

// Run polls the screen and steps the gui until ctx is cancelled or a quit key is pressed. The
// screen must be initialized; Run finalizes it before returning.
func (r *Runner) Run(ctx context.Context) error {
	done := make(chan struct{})
	events := make(chan tcell.Event, 64)

	defer func() {
		close(done)
		r.screen.Fini()
	}()

	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}

			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !r.HandleEvent(ev) {
				slog.Debug("Quit requested")

				return nil
			}
		case conf := <-r.updates:
			r.applyConfig(conf)
			ticker.Reset(r.interval)
			slog.Info("Config reloaded")
		case <-ticker.C:
			if err := r.Frame(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}

				return err
			}
		}
	}
}
