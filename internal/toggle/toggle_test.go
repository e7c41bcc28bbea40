package toggle_test

import (
	"fmt"
	"testing"

	"github.com/leighmacdonald/halgui/internal/toggle"
	"github.com/stretchr/testify/require"
)

func TestToggleSequences(t *testing.T) {
	type tc struct {
		kind    toggle.Kind
		initial bool
		input   []bool
		want    []bool
	}

	cases := []tc{
		{
			kind:  toggle.Flip,
			input: []bool{false, true, true, false, true},
			want:  []bool{false, true, true, true, false},
		},
		{
			kind:    toggle.Flip,
			initial: true,
			input:   []bool{true, false, true},
			want:    []bool{false, false, true},
		},
		{
			kind:  toggle.TrueOnce,
			input: []bool{false, true, true, false, true},
			want:  []bool{false, true, false, false, true},
		},
		{
			kind:  toggle.TrueOnceAllowTurnOff,
			input: []bool{false, true, true, false, true},
			want:  []bool{false, true, true, true, false},
		},
		{
			kind:  toggle.TrueWhileHeldOnce,
			input: []bool{false, true, true, false, true, false},
			want:  []bool{false, true, true, false, true, false},
		},
	}

	for index, testCase := range cases {
		tgl := toggle.New(testCase.kind, testCase.initial)
		got := make([]bool, 0, len(testCase.input))
		for _, sample := range testCase.input {
			tgl.Update(sample)
			got = append(got, tgl.State())
		}
		require.Equal(t, testCase.want, got, fmt.Sprintf("Test %d fail - %s", index, testCase.kind))
	}
}

func TestTrueOnceCountsEdges(t *testing.T) {
	tgl := toggle.New(toggle.TrueOnce, false)
	trues := 0
	for _, sample := range []bool{false, true, true, false, true} {
		tgl.Update(sample)
		if tgl.State() {
			trues++
		}
	}

	require.Equal(t, 2, trues)
}

func TestTrueOnceUnreadStaysLatched(t *testing.T) {
	tgl := toggle.New(toggle.TrueOnce, false)
	tgl.Update(true)
	tgl.Update(false)
	require.True(t, tgl.State())
	require.False(t, tgl.State())
}

func TestReset(t *testing.T) {
	tgl := toggle.New(toggle.Flip, false)
	tgl.Update(true)
	require.True(t, tgl.State())
	tgl.Reset()
	require.False(t, tgl.State())
	tgl.Update(true)
	require.True(t, tgl.State())
}

func TestUnknownKindPanics(t *testing.T) {
	require.Panics(t, func() { toggle.New(toggle.Kind(42), false) })
}
