// Package selection defines the grid of cells a menu cursor is allowed to stop on.
package selection

import (
	"errors"
	"strings"
)

var ErrOutOfBounds = errors.New("location outside of selection zone")

// Zone is a rectangular mask of navigable cursor cells. Rows always share the same width; jagged
// input is boxed by right padding with false. A Zone only grows.
//
// Copies of a Zone value share cell storage, so SetValue on a copy also changes the original.
// Take an independent copy with Clone before mutating a zone that someone else holds; Menu does
// this on SetSelectionZone and SelectionZone.
type Zone struct {
	rows  [][]bool
	width int
}

// Zero returns the zone with no selectable cells. Cursor movement over it is a no-op.
func Zero() Zone {
	return Zone{}
}

// New returns a fully selectable zone of the given size. Non-positive sizes produce the zero zone.
func New(width int, height int) Zone {
	if width <= 0 || height <= 0 {
		return Zero()
	}

	rows := make([][]bool, height)
	for y := range rows {
		rows[y] = make([]bool, width)
		for x := range rows[y] {
			rows[y][x] = true
		}
	}

	return Zone{rows: rows, width: width}
}

// FromMatrix builds a zone from an explicit mask. The input is copied.
func FromMatrix(matrix [][]bool) Zone {
	var zone Zone
	for _, row := range matrix {
		zone.AddRow(row)
	}

	return zone
}

// FromInts builds a zone from an integer mask where any non-zero value is selectable.
func FromInts(matrix [][]int) Zone {
	var zone Zone
	for _, row := range matrix {
		values := make([]bool, len(row))
		for x, value := range row {
			values[x] = value != 0
		}
		zone.AddRow(values)
	}

	return zone
}

// IsZero reports whether no navigation is possible in this zone.
func (z Zone) IsZero() bool {
	return z.width == 0 || len(z.rows) == 0
}

func (z Zone) Width() int {
	return z.width
}

func (z Zone) Height() int {
	return len(z.rows)
}

// IsValidLocation reports whether the cursor may rest on (x, y).
func (z Zone) IsValidLocation(x int, y int) bool {
	if x < 0 || y < 0 || x >= z.width || y >= len(z.rows) {
		return false
	}

	return z.rows[y][x]
}

// AddRow appends a row, right padding it or every existing row so all rows share the widest length.
func (z *Zone) AddRow(row []bool) {
	if len(row) > z.width {
		z.width = len(row)
		for y := range z.rows {
			z.rows[y] = pad(z.rows[y], z.width)
		}
	}

	z.rows = append(z.rows, pad(row, z.width))
}

// SetValue edits a single cell.
func (z *Zone) SetValue(x int, y int, value bool) error {
	if x < 0 || y < 0 || x >= z.width || y >= len(z.rows) {
		return ErrOutOfBounds
	}

	z.rows[y][x] = value

	return nil
}

// Row returns a copy of row y, or nil when y is out of range.
func (z Zone) Row(y int) []bool {
	if y < 0 || y >= len(z.rows) {
		return nil
	}

	out := make([]bool, len(z.rows[y]))
	copy(out, z.rows[y])

	return out
}

// Clone returns a deep copy so the caller can mutate it without affecting the original.
func (z Zone) Clone() Zone {
	out := Zone{width: z.width, rows: make([][]bool, len(z.rows))}
	for y := range z.rows {
		out.rows[y] = z.Row(y)
	}

	return out
}

// String renders the mask using '#' for selectable and '.' for blocked cells.
func (z Zone) String() string {
	var builder strings.Builder
	for y, row := range z.rows {
		if y > 0 {
			builder.WriteByte('\n')
		}
		for _, cell := range row {
			if cell {
				builder.WriteByte('#')
			} else {
				builder.WriteByte('.')
			}
		}
	}

	return builder.String()
}

func pad(row []bool, width int) []bool {
	out := make([]bool, width)
	copy(out, row)

	return out
}
