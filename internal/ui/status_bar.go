package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/halgui/internal/event"
	"github.com/leighmacdonald/halgui/internal/ui/command"
	"github.com/leighmacdonald/halgui/internal/ui/input"
	"github.com/leighmacdonald/halgui/internal/ui/styles"
)

// lastInput is written by the gui router and read by the status bar view.
type lastInput struct {
	evt   event.Event
	at    time.Time
	valid bool
}

func (l *lastInput) record(now func() time.Time) event.Handler {
	return func(evt event.Event) {
		l.evt = evt
		l.at = now()
		l.valid = true
	}
}

type statusBarModel struct {
	width       int
	statusMsg   string
	statusError bool
	version     string
	last        *lastInput
	now         func() time.Time
}

func newStatusBarModel(version string, last *lastInput, now func() time.Time) statusBarModel {
	return statusBarModel{version: version, last: last, now: now}
}

func (m statusBarModel) Init() tea.Cmd {
	return nil
}

func (m statusBarModel) Update(msg tea.Msg) (statusBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case command.StatusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return m, command.ClearErrorAfter(command.ClearMessageTimeout)
	case command.ClearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

func (m statusBarModel) View() string {
	args := []string{
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", input.Default.Help.Help().Key, input.Default.Help.Help().Desc)),
	}

	if m.last != nil && m.last.valid {
		args = append(args,
			styles.StatusEvent.Render(fmt.Sprintf("%s %v", m.last.evt.Type, m.last.evt.Data)),
			styles.StatusAge.Render(humanize.RelTime(m.last.at, m.now(), "ago", "from now")))
	}

	args = append(args, m.status())

	return lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))
}

func (m statusBarModel) status() string {
	if m.statusMsg == "" {
		return ""
	}

	if m.statusError {
		return styles.StatusError.Render(m.statusMsg)
	}

	return styles.StatusMessage.Render(m.statusMsg)
}
