package pulse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name   string
		codes  []Code
		width  int
		expect string
	}{
		{"empty", nil, 80, ""},
		{
			"equal halves",
			[]Code{
				{Level1: true, Duration1: 625, Level2: false, Duration2: 625},
				{Level1: true, Duration1: 625, Level2: false, Duration2: 625},
			},
			80,
			strings.Repeat("-", 21) + strings.Repeat("_", 21) + strings.Repeat("-", 21) + strings.Repeat("_", 21),
		},
		{
			"proportional with rounding",
			[]Code{{Level1: false, Duration1: 1, Level2: true, Duration2: 3}},
			10,
			"____---------",
		},
		{
			"single half",
			[]Code{{Level1: true, Duration1: 100}},
			4,
			"-----",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFrame(4)
			copy(f.Codes(), tc.codes)
			require.Equal(t, tc.expect, Render(f, tc.width))
		})
	}
}

func TestRenderIdempotent(t *testing.T) {
	f := NewFrame(CapacityRepeater)
	edges := make([]bool, 2*f.Cap())
	for i := range edges {
		edges[i] = i%3 == 0
	}
	_, err := EncodeSlice(f, edges, 625, NegativeEdgeIsOne)
	require.NoError(t, err)
	require.Equal(t, Render(f, DefaultWidth), Render(f, DefaultWidth))
}

func TestRenderN(t *testing.T) {
	f := NewFrame(2)
	copy(f.Codes(), []Code{
		{Level1: true, Duration1: 1, Level2: false, Duration2: 1},
		{Level1: true, Duration1: 1, Level2: false, Duration2: 1},
	})
	require.Equal(t, "---", RenderN(f, 1, 2))
	require.Equal(t, Render(f, 8), RenderN(f, 100, 8))
	require.Equal(t, "", RenderN(f, 0, 8))
	require.Equal(t, "-_-_", RenderN(f, 4, -1))
}

func TestDump(t *testing.T) {
	f := NewFrame(4)
	_, err := EncodeSlice(f, []bool{true, false, true}, 625, PositiveEdgeIsOne)
	require.NoError(t, err)
	require.Equal(t, []string{"[0]: l1=625 l2=625", "[1]: l1=625 l2=0"}, Dump(f))
	require.Empty(t, Dump(NewFrame(1)))
}
