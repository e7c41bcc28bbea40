package selection_test

import (
	"testing"

	"github.com/leighmacdonald/halgui/internal/selection"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	zone := selection.New(3, 2)
	require.False(t, zone.IsZero())
	require.Equal(t, 3, zone.Width())
	require.Equal(t, 2, zone.Height())
	for y := range 2 {
		for x := range 3 {
			require.True(t, zone.IsValidLocation(x, y))
		}
	}

	require.True(t, selection.New(0, 4).IsZero())
	require.True(t, selection.New(4, 0).IsZero())
	require.True(t, selection.New(4, -1).IsZero())
	require.True(t, selection.Zero().IsZero())
}

func TestOutOfBoundsIsInvalid(t *testing.T) {
	zone := selection.FromInts([][]int{{1, 1}, {1, 1}})
	require.False(t, zone.IsValidLocation(2, 0))
	require.False(t, zone.IsValidLocation(0, 2))
	require.False(t, zone.IsValidLocation(-1, 0))
	require.False(t, zone.IsValidLocation(0, -1))
	require.False(t, selection.Zero().IsValidLocation(0, 0))
}

func TestJaggedMatrixIsBoxed(t *testing.T) {
	zone := selection.FromMatrix([][]bool{{true}, {true, false, true}, {}})
	require.Equal(t, 3, zone.Width())
	require.Equal(t, 3, zone.Height())
	require.Equal(t, []bool{true, false, false}, zone.Row(0))
	require.Equal(t, []bool{true, false, true}, zone.Row(1))
	require.Equal(t, []bool{false, false, false}, zone.Row(2))
	require.Equal(t, "#..\n#.#\n...", zone.String())
}

func TestAddRow(t *testing.T) {
	zone := selection.FromInts([][]int{{1, 0}})
	widths := []int{zone.Width()}

	zone.AddRow([]bool{true})
	widths = append(widths, zone.Width())
	zone.AddRow([]bool{false, false, false, true})
	widths = append(widths, zone.Width())
	zone.AddRow(nil)
	widths = append(widths, zone.Width())

	require.Equal(t, []int{2, 2, 4, 4}, widths)
	require.Equal(t, 4, zone.Height())
	require.Equal(t, []bool{true, false, false, false}, zone.Row(0))
	require.Equal(t, []bool{true, false, false, false}, zone.Row(1))
	require.Equal(t, []bool{false, false, false, true}, zone.Row(2))
	require.Equal(t, []bool{false, false, false, false}, zone.Row(3))
}

func TestAddRowToZeroZone(t *testing.T) {
	zone := selection.Zero()
	zone.AddRow([]bool{true})
	require.False(t, zone.IsZero())
	require.True(t, zone.IsValidLocation(0, 0))
}

func TestSetValue(t *testing.T) {
	zone := selection.New(2, 2)
	require.NoError(t, zone.SetValue(1, 1, false))
	require.False(t, zone.IsValidLocation(1, 1))
	require.ErrorIs(t, zone.SetValue(2, 0, true), selection.ErrOutOfBounds)
	require.ErrorIs(t, zone.SetValue(0, -1, true), selection.ErrOutOfBounds)
}

func TestCloneIsIndependent(t *testing.T) {
	zone := selection.New(2, 1)
	clone := zone.Clone()
	require.NoError(t, clone.SetValue(0, 0, false))
	require.True(t, zone.IsValidLocation(0, 0))
	require.False(t, clone.IsValidLocation(0, 0))
}
