package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

const maxProgramFPS = 120

var ErrUIExit = errors.New("ui error returned")

type UI struct {
	program *tea.Program
}

func New(ctx context.Context, opts Options) *UI {
	zone.NewGlobal()

	return &UI{
		program: tea.NewProgram(
			NewModel(ctx, opts),
			tea.WithMouseCellMotion(),
			tea.WithReportFocus(),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithFPS(min(maxProgramFPS, max(1, opts.Config.FPS)))),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}

		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
