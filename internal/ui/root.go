package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/halgui/internal/config"
	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/gamepad"
	"github.com/leighmacdonald/halgui/internal/gui"
	"github.com/leighmacdonald/halgui/internal/telemetry"
	"github.com/leighmacdonald/halgui/internal/ui/command"
	"github.com/leighmacdonald/halgui/internal/ui/input"
	"github.com/leighmacdonald/halgui/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

const (
	lineZonePrefix = "line-"
	minFrameWidth  = 20
)

// Options is everything the program needs from the caller.
type Options struct {
	GUI      *gui.GUI
	Pad      *gamepad.KeyboardPad
	Frame    *telemetry.Buffer
	Bindings []config.Binding
	Config   config.Config
	Version  string
}

// rootModel is the top level model hosting the gui.
type rootModel struct {
	ctx       context.Context //nolint:containedctx
	gui       *gui.GUI
	pad       *gamepad.KeyboardPad
	frame     *telemetry.Buffer
	keys      config.KeyMap
	bindings  []config.Binding
	interval  time.Duration
	status    statusBarModel
	width     int
	height    int
	showHelp  bool
	lastError error
}

// NewModel creates the bubbletea model. The gui must have been created with opts.Frame as its sink
// and opts.Pad as its source.
func NewModel(ctx context.Context, opts Options) tea.Model {
	last := &lastInput{}
	opts.GUI.Listen(event.Any, last.record(opts.GUI.Now))

	return rootModel{
		ctx:      ctx,
		gui:      opts.GUI,
		pad:      opts.Pad,
		frame:    opts.Frame,
		keys:     config.NewKeyMap(opts.Bindings),
		bindings: opts.Bindings,
		interval: opts.Config.FrameInterval(),
		status:   newStatusBarModel(opts.Version, last, opts.GUI.Now),
		width:    minFrameWidth * 3,
	}
}

func (m rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("halgui"),
		m.status.Init(),
		command.Frame(m.interval),
	)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	var cmd tea.Cmd
	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.status, cmd = m.status.Update(msg)

		return m, cmd
	case command.FrameMsg:
		if err := m.gui.Step(m.ctx); err != nil {
			m.lastError = err

			return m, tea.Quit
		}

		return m, command.Frame(m.interval)
	case command.ConfigMsg:
		m.applyConfig(msg.Config)

		return m, command.SetStatusMessage("Config reloaded", false)
	case command.StatusMsg, command.ClearStatusMessageMsg:
		m.status, cmd = m.status.Update(msg)

		return m, cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, input.Default.Quit):
			return m, tea.Quit
		case key.Matches(msg, input.Default.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, input.Default.Forward):
			m.gui.Forward(nil)
		default:
			if button, found := m.keys.Button(msg.String()); found {
				m.pad.Press(button)
			}
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.BlurMsg:
		// Key releases are never seen while unfocused.
		m.pad.ReleaseAll()
	}

	return m, nil
}

func (m rootModel) applyConfig(conf config.Config) {
	m.pad.SetWindow(conf.ReleaseWindow())
	m.gui.SetBlinkSpeed(conf.BlinkSpeed())
	m.gui.Generator().SetHoldInterval(conf.HoldInterval())
}

func (m rootModel) mouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.move(input.Up)
	case msg.Button == tea.MouseButtonWheelDown:
		m.move(input.Down)
	case msg.Button == tea.MouseButtonWheelLeft:
		m.move(input.Left)
	case msg.Button == tea.MouseButtonWheelRight:
		m.move(input.Right)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.click(msg) {
			m.pad.Latch(m.selectButton())
		}
	case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft:
		// The current tree may have changed since the press.
		m.pad.Unlatch(gamepad.Pad1(gamepad.A))
		m.pad.Unlatch(gamepad.Pad2(gamepad.A))
	}
}

// selectButton is the A button of the gamepad driving the current tree.
func (m rootModel) selectButton() gamepad.Button {
	tree := m.gui.CurrentTree()
	if tree == nil {
		return gamepad.Pad1(gamepad.A)
	}

	return gamepad.Button{Slot: tree.Controls().Up.Slot, Key: gamepad.A}
}

func (m rootModel) move(dir input.Direction) {
	current := m.gui.CurrentMenu()
	if current == nil {
		return
	}

	var moved bool
	switch dir {
	case input.Up:
		moved = current.CursorUp()
	case input.Down:
		moved = current.CursorDown()
	case input.Left:
		moved = current.CursorLeft()
	case input.Right:
		moved = current.CursorRight()
	}

	if moved {
		m.gui.Render(true)
	}
}

// click moves the cursor to the clicked cell of a menu line, reporting whether a selectable line
// was hit.
func (m rootModel) click(msg tea.MouseMsg) bool {
	current := m.gui.CurrentMenu()
	if current == nil {
		return false
	}

	first := current.Cursor().Level * telemetry.MaxLinesPerScreen
	for index := range m.frame.Lines() {
		info := zone.Get(lineID(index))
		if !info.InBounds(msg) {
			continue
		}

		column, _ := info.Pos(msg)
		y := first + index
		if err := current.SetCursorPos(column, y); err != nil {
			if errLine := current.SetCursorPos(0, y); errLine != nil {
				slog.Debug("Line not selectable", slog.Int("y", y), slog.String("error", errLine.Error()))

				return false
			}
		}

		m.gui.Render(true)

		return true
	}

	return false
}

func lineID(index int) string {
	return fmt.Sprintf("%s%d", lineZonePrefix, index)
}

func (m rootModel) header() string {
	tree := m.gui.CurrentTree()
	if tree == nil {
		return styles.ContainerTitle.Render("halgui")
	}

	tabs := make([]string, 0, len(m.gui.Trees()))
	for _, other := range m.gui.Trees() {
		style := styles.TabsInactive
		if other == tree {
			style = styles.TabsActive
		}

		tabs = append(tabs, style.Render(other.Name()))
	}

	path := fmt.Sprintf("%s  depth %d", tree.Current().Name(), tree.Depth())
	if tree.ForwardDepth() > 0 {
		path += fmt.Sprintf(" (+%d)", tree.ForwardDepth())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		styles.HeaderDepth.Render(path))
}

func (m rootModel) help() string {
	rows := make([]string, 0, len(m.bindings)+3)
	for _, binding := range m.bindings {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			styles.HelpButton.Render(binding.Button.String()),
			styles.HelpKeys.Render(strings.Join(binding.Keys, " "))))
	}

	for _, hostKey := range []key.Binding{input.Default.Quit, input.Default.Forward, input.Default.Help} {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			styles.HelpButton.Render(hostKey.Help().Desc),
			styles.HelpKeys.Render(strings.Join(hostKey.Keys(), " "))))
	}

	return styles.HelpBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m rootModel) View() string {
	width := max(minFrameWidth, m.width-4)
	lines := m.frame.Lines()
	rendered := make([]string, 0, telemetry.MaxLinesPerScreen)
	for index := range max(telemetry.MaxLinesPerScreen, len(lines)) {
		text := ""
		if index < len(lines) {
			text = zone.Mark(lineID(index), truncate.String(lines[index], uint(width))) //nolint:gosec
		}

		rendered = append(rendered, styles.MenuLine.Width(width).Render(text))
	}

	parts := []string{
		styles.HeaderContainerStyle.Width(m.width).Render(m.header()),
		styles.ContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rendered...)),
	}

	if m.showHelp {
		parts = append(parts, m.help())
	}

	parts = append(parts, styles.FooterContainerStyle.Width(m.width).Render(m.status.View()))

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case command.FrameMsg:
		break
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
