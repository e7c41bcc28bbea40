package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	Black  = lipgloss.Color("#111111")
	Gray   = lipgloss.Color("#3e3e3e")
	White  = lipgloss.Color("#cccccc")
	Red    = lipgloss.Color("#B8383B")
	Blu    = lipgloss.Color("#5885A2")
	Green  = lipgloss.Color("#4d7455")
	Yellow = lipgloss.Color("#ffd700")
	Purple = lipgloss.Color("#8650ac")

	ContainerTitle  = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	ContainerBorder = lipgloss.DoubleBorder()
	ContainerStyle  = lipgloss.NewStyle().Border(ContainerBorder).BorderForeground(Blu).Padding(0, 1)

	HeaderContainerStyle = lipgloss.NewStyle().Align(lipgloss.Left)
	FooterContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)

	MenuLine = lipgloss.NewStyle().Foreground(White)

	TabsInactive = lipgloss.NewStyle().Bold(true).Foreground(Gray).PaddingLeft(1).PaddingRight(1)
	TabsActive   = lipgloss.NewStyle().Bold(true).Foreground(Purple).PaddingLeft(1).PaddingRight(1)
	HeaderDepth  = lipgloss.NewStyle().Foreground(Gray).PaddingLeft(2)

	StatusEvent   = lipgloss.NewStyle().Foreground(Yellow).PaddingRight(2).PaddingLeft(1).Bold(true)
	StatusAge     = lipgloss.NewStyle().Foreground(Gray).PaddingRight(2)
	StatusError   = lipgloss.NewStyle().Foreground(Red).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage = lipgloss.NewStyle().Foreground(Green).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusHelp    = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center).PaddingRight(2)
	StatusVersion = lipgloss.NewStyle().Foreground(Green).Bold(true).Align(lipgloss.Center).PaddingRight(2)

	HelpBox    = lipgloss.NewStyle().Padding(1, 3)
	HelpButton = lipgloss.NewStyle().Foreground(Accent).Width(28)
	HelpKeys   = lipgloss.NewStyle().Foreground(White)
)
