// Package term hosts the gui directly on a tcell screen, without bubbletea.
package term

import (
	"github.com/gdamore/tcell/v2"
)

var (
	styleLine   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHeader = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// ScreenSink draws each flushed frame at a fixed row offset of the screen.
type ScreenSink struct {
	screen  tcell.Screen
	top     int
	pending []string
	drawn   int
}

func NewScreenSink(screen tcell.Screen, top int) *ScreenSink {
	return &ScreenSink{screen: screen, top: top}
}

func (s *ScreenSink) AddLine(line string) {
	s.pending = append(s.pending, line)
}

// Update replaces the previous frame. Rows left over from a taller frame are cleared.
func (s *ScreenSink) Update() {
	width, _ := s.screen.Size()
	for index, line := range s.pending {
		drawRow(s.screen, s.top+index, width, line, styleLine)
	}

	for index := len(s.pending); index < s.drawn; index++ {
		drawRow(s.screen, s.top+index, width, "", styleLine)
	}

	s.drawn = len(s.pending)
	s.pending = nil
	s.screen.Show()
}

// drawRow writes text from the left edge and blanks the rest of the row.
func drawRow(screen tcell.Screen, y int, width int, text string, style tcell.Style) {
	x := 0
	for _, char := range text {
		if x >= width {
			break
		}

		screen.SetContent(x, y, char, nil, style)
		x++
	}

	for ; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
