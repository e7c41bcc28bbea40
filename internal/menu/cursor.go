package menu

import (
	"unicode/utf8"

	"github.com/leighmacdonald/halgui/internal/telemetry"
)

// selectable reports whether the cursor may rest on (x, y): the zone allows it and the line has a
// character there.
func (m *Menu) selectable(x int, y int) bool {
	return x < m.lineWidth(y) && m.zone.IsValidLocation(x, y)
}

// lineWidth is the number of cursor columns on line y.
func (m *Menu) lineWidth(y int) int {
	if y < 0 || y >= len(m.displayable) {
		return 0
	}

	text, _ := m.displayable[y].(Renders).Text()

	return min(m.zone.Width(), utf8.RuneCountInString(text))
}

// nearestInRow finds the selectable cell of row y closest to the cursor by taxicab distance.
// Equal distances keep the leftmost cell.
func (m *Menu) nearestInRow(y int) (int, bool) {
	bestX, bestDist, found := 0, 0, false
	for x := range m.lineWidth(y) {
		if !m.zone.IsValidLocation(x, y) {
			continue
		}

		dist := abs(x-m.cursor.X) + abs(y-m.cursor.Y)
		if !found || dist < bestDist {
			bestX, bestDist, found = x, dist, true
		}
	}

	return bestX, found
}

// CursorUp moves to the nearest selectable cell on the closest row above that has one. The cursor
// stays put when there is none.
func (m *Menu) CursorUp() bool {
	if m.zone.IsZero() {
		return false
	}

	for y := m.cursor.Y - 1; y >= 0; y-- {
		if x, found := m.nearestInRow(y); found {
			m.moveTo(x, y)

			return true
		}
	}

	return false
}

// CursorDown mirrors CursorUp for the rows below.
func (m *Menu) CursorDown() bool {
	if m.zone.IsZero() {
		return false
	}

	for y := m.cursor.Y + 1; y < len(m.displayable); y++ {
		if x, found := m.nearestInRow(y); found {
			m.moveTo(x, y)

			return true
		}
	}

	return false
}

// CursorLeft moves to the first selectable cell to the left on the same row.
func (m *Menu) CursorLeft() bool {
	if m.zone.IsZero() {
		return false
	}

	for x := m.cursor.X - 1; x >= 0; x-- {
		if m.selectable(x, m.cursor.Y) {
			m.moveTo(x, m.cursor.Y)

			return true
		}
	}

	return false
}

// CursorRight moves to the first selectable cell to the right on the same row.
func (m *Menu) CursorRight() bool {
	if m.zone.IsZero() {
		return false
	}

	for x := m.cursor.X + 1; x < m.lineWidth(m.cursor.Y); x++ {
		if m.selectable(x, m.cursor.Y) {
			m.moveTo(x, m.cursor.Y)

			return true
		}
	}

	return false
}

// SetCursorPos places the cursor directly.
func (m *Menu) SetCursorPos(x int, y int) error {
	if !m.selectable(x, y) {
		return ErrInvalidCursor
	}

	m.moveTo(x, y)

	return nil
}

func (m *Menu) moveTo(x int, y int) {
	m.cursor.X = x
	m.cursor.Y = y
	if m.enforceMaxLines {
		m.cursor.Level = y / telemetry.MaxLinesPerScreen
	}

	m.forceUpdate = true
}

// snapCursor moves a cursor left on an unselectable cell to the first selectable one in reading
// order. With nothing selectable it parks at the origin.
func (m *Menu) snapCursor() {
	if m.selectable(m.cursor.X, m.cursor.Y) {
		return
	}

	for y := range m.displayable {
		for x := range m.lineWidth(y) {
			if m.zone.IsValidLocation(x, y) {
				m.moveTo(x, y)

				return
			}
		}
	}

	m.cursor = Cursor{}
}

func abs(value int) int {
	if value < 0 {
		return -value
	}

	return value
}
