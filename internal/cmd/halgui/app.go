package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/leighmacdonald/halgui/internal/config"
	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/gui"
	"github.com/leighmacdonald/halgui/internal/menu"
	"github.com/leighmacdonald/halgui/internal/menus"
	"github.com/leighmacdonald/halgui/internal/store"
	"github.com/leighmacdonald/halgui/internal/telemetry"
	"github.com/leighmacdonald/halgui/internal/term"
	"github.com/leighmacdonald/halgui/internal/ui"
	"github.com/leighmacdonald/halgui/internal/ui/command"
	"golang.org/x/sync/errgroup"
)

const eventLogSize = 64

// App wires the configuration, session store and one of the terminal backends together.
type App struct {
	config        config.Config
	bindings      []config.Binding
	database      *sql.DB
	sessions      *store.Sessions
	configUpdates chan config.Config
	// loader persists settings changed from within the menus, may be nil.
	loader *config.Loader
}

func NewApp(ctx context.Context, conf config.Config, configUpdates chan config.Config) (*App, error) {
	bindings, errBindings := loadBindings(conf)
	if errBindings != nil {
		return nil, errors.Join(errBindings, errApp)
	}

	dbPath := conf.DatabasePath
	if dbPath == "" {
		dbPath = config.Path(config.DefaultDBName)
	}

	database, errDB := store.Open(ctx, dbPath, true)
	if errDB != nil {
		return nil, errors.Join(errDB, errApp)
	}

	return &App{
		config:        conf,
		bindings:      bindings,
		database:      database,
		sessions:      store.NewSessions(database),
		configUpdates: configUpdates,
	}, nil
}

func (app *App) Close() {
	if err := app.database.Close(); err != nil {
		slog.Error("Error closing database", slog.String("error", err.Error()))
	}
}

// loadBindings prefers the configured keymap, then a keymap in the config dir, then the defaults.
func loadBindings(conf config.Config) ([]config.Binding, error) {
	keymapPath := conf.KeymapPath
	if keymapPath == "" {
		if _, err := os.Stat(config.Path(config.DefaultKeymapName)); err == nil {
			keymapPath = config.Path(config.DefaultKeymapName)
		}
	}

	return config.ReadBindings(keymapPath)
}

// newGUI builds the gui with both demo trees over the given sink and source.
func (app *App) newGUI(sink telemetry.Sink, pad *gamepad.KeyboardPad) (*gui.GUI, error) {
	opts := []gui.Opt{gui.WithGeneratorOpts(gamepad.WithHoldInterval(app.config.HoldInterval()))}
	if app.config.CycleButton != "" {
		cycle, errCycle := gamepad.ParseButton(app.config.CycleButton)
		if errCycle != nil {
			return nil, errors.Join(errCycle, errApp)
		}

		opts = append(opts, gui.WithCycleButton(cycle))
	}

	host := gui.New(sink, pad, opts...)
	for name, priority := range app.config.Priorities {
		button, errButton := gamepad.ParseButton(name)
		if errButton != nil {
			slog.Warn("Ignoring priority of unknown button", slog.String("button", name))

			continue
		}

		host.Generator().SetPriority(button, priority)
	}

	textEntered, errRegister := menus.RegisterEvents(event.Default)
	if errRegister != nil {
		return nil, errors.Join(errRegister, errApp)
	}

	eventLog := menus.NewEventLog(eventLogSize, host.Now)
	host.Listen(event.Any, eventLog.Record)
	host.SetBlinkSpeed(app.config.BlinkSpeed())

	env := menus.Env{
		Blink:        host,
		Queue:        host.Queue(),
		Registry:     event.Default,
		Log:          eventLog,
		TextEntered:  textEntered,
		OnBlinkSpeed: app.onBlinkSpeed,
		Opts:         menuOpts(app.config),
	}

	host.AddRootMenu(menus.Main(env), gui.DefaultControls())
	host.AddRootMenu(menus.Counter(env), gui.Controls{
		Up:    gamepad.Pad2(gamepad.DpadUp),
		Down:  gamepad.Pad2(gamepad.DpadDown),
		Left:  gamepad.Pad2(gamepad.DpadLeft),
		Right: gamepad.Pad2(gamepad.DpadRight),
	})

	return host, nil
}

// sink mirrors rendered frames into the debug log when debug is enabled.
func (app *App) sink(primary telemetry.Sink) telemetry.Sink {
	if !app.config.Debug {
		return primary
	}

	return telemetry.Multi{primary, telemetry.NewLogger(nil)}
}

func (app *App) onBlinkSpeed(speed time.Duration) {
	slog.Debug("Blink speed changed", slog.Duration("speed", speed))
	if app.loader == nil {
		return
	}

	app.config.BlinkMs = int(speed / time.Millisecond)
	if err := app.loader.Write(app.config); err != nil {
		slog.Error("Failed to save blink speed", slog.String("error", err.Error()))
	}
}

// restore moves each root menu's cursor to where it was left last time.
func (app *App) restore(ctx context.Context, host *gui.GUI) {
	for _, tree := range host.Trees() {
		root := tree.Root()
		pos, errLoad := app.sessions.LoadCursor(ctx, tree.Name(), root.Name())
		if errLoad != nil {
			if !errors.Is(errLoad, store.ErrNotFound) {
				slog.Error("Failed to load cursor", slog.String("error", errLoad.Error()))
			}

			continue
		}

		if err := root.SetCursorPos(pos.X, pos.Y); err != nil {
			slog.Debug("Saved cursor no longer valid", slog.String("tree", tree.Name()), slog.String("error", err.Error()))
		}
	}
}

// save stores each root menu's cursor, which a root keeps while child menus are shown over it.
func (app *App) save(ctx context.Context, host *gui.GUI) {
	for _, tree := range host.Trees() {
		root := tree.Root()
		pos := store.Position{
			Tree: tree.Name(),
			Menu: root.Name(),
			X:    root.Cursor().X,
			Y:    root.Cursor().Y,
		}

		if err := app.sessions.SaveCursor(ctx, pos); err != nil {
			slog.Error("Failed to save cursor", slog.String("error", err.Error()))
		}
	}
}

// clearSessions forgets the saved cursors of the named trees.
func (app *App) clearSessions(ctx context.Context, trees []string) error {
	for _, tree := range trees {
		if err := app.sessions.DeleteTree(ctx, tree); err != nil {
			return errors.Join(err, errApp)
		}

		slog.Info("Cleared saved cursors", slog.String("tree", tree))
	}

	return nil
}

func (app *App) printSessions(ctx context.Context, out io.Writer) error {
	positions, errList := app.sessions.ListCursors(ctx)
	if errList != nil {
		return errors.Join(errList, errApp)
	}

	for _, pos := range positions {
		if _, err := fmt.Fprintf(out, "%-10s %-12s %3d,%-3d %s\n", pos.Tree, pos.Menu, pos.X, pos.Y,
			humanize.Time(pos.UpdatedOn)); err != nil {
			return err
		}
	}

	return nil
}

// Start runs the configured backend until the user quits or ctx is cancelled.
func (app *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks, taskCtx := errgroup.WithContext(runCtx)
	pad := gamepad.NewKeyboardPad(time.Now, app.config.ReleaseWindow())

	var (
		host   *gui.GUI
		reload func(conf config.Config)
		runUI  func() error
	)

	switch strings.ToLower(app.config.Backend) {
	case config.BackendTCell:
		screen, errScreen := tcell.NewScreen()
		if errScreen != nil {
			return errors.Join(errScreen, errApp)
		}

		if err := screen.Init(); err != nil {
			return errors.Join(err, errApp)
		}

		screen.EnableFocus()

		var errGUI error
		host, errGUI = app.newGUI(app.sink(term.NewScreenSink(screen, term.FrameTop)), pad)
		if errGUI != nil {
			screen.Fini()

			return errGUI
		}

		runner := term.NewRunner(screen, host, pad, app.bindings, app.config.FrameInterval())
		updates := make(chan config.Config)
		runner.SetConfigUpdates(updates)
		reload = func(conf config.Config) {
			select {
			case updates <- conf:
			case <-taskCtx.Done():
			}
		}
		runUI = func() error { return runner.Run(taskCtx) }
	default:
		frame := telemetry.NewBuffer()
		var errGUI error
		host, errGUI = app.newGUI(app.sink(frame), pad)
		if errGUI != nil {
			return errGUI
		}

		program := ui.New(taskCtx, ui.Options{
			GUI:      host,
			Pad:      pad,
			Frame:    frame,
			Bindings: app.bindings,
			Config:   app.config,
			Version:  BuildVersion,
		})
		reload = func(conf config.Config) { program.Send(command.ConfigMsg{Config: conf}) }
		runUI = program.Run
	}

	app.restore(ctx, host)

	tasks.Go(func() error {
		defer cancel()

		return runUI()
	})

	tasks.Go(func() error {
		for {
			select {
			case conf := <-app.configUpdates:
				reload(conf)
			case <-taskCtx.Done():
				return nil
			}
		}
	})

	errRun := tasks.Wait()

	// The ui goroutine has exited so the gui is no longer in use.
	app.save(ctx, host)

	if errRun != nil {
		return errors.Join(errRun, errApp)
	}

	return nil
}

func menuOpts(conf config.Config) []menu.Opt {
	return []menu.Opt{menu.WithGlyph(conf.Glyph()), menu.WithBlinkSpeed(conf.BlinkSpeed())}
}
