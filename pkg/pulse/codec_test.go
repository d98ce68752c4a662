package pulse

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/edgeline/pkg/edge"
)

func TestEncodeScenario(t *testing.T) {
	f := NewFrame(CapacityRepeater)
	n, err := EncodeSlice(f, []bool{true, false, true, false}, 625, PositiveEdgeIsOne)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	expect := Code{Level1: true, Duration1: 625, Level2: false, Duration2: 625}
	require.Equal(t, expect, f.At(0))
	require.Equal(t, expect, f.At(1))
	for i := 2; i < f.Cap(); i++ {
		require.Equalf(t, Code{}, f.At(i), "code[%d] not zero", i)
	}

	d := Decode(f, edge.High)
	require.Equal(t, 4, d.Length)
	require.Equal(t, uint64(2500), d.Total)
	require.Equal(t, edge.High, d.Init)
	require.Equal(t, []bool{true, false, true, false}, d.Edges(PositiveEdgeIsOne))
}

func TestEncodePolarity(t *testing.T) {
	f := NewFrame(4)
	_, err := EncodeSlice(f, []bool{true, false, false}, 10, NegativeEdgeIsOne)
	require.NoError(t, err)
	require.Equal(t, Code{Level1: false, Duration1: 10, Level2: true, Duration2: 10}, f.At(0))
	require.Equal(t, Code{Level1: true, Duration1: 10}, f.At(1))
	require.Equal(t, []bool{true, false, false}, Decode(f, edge.Low).Edges(NegativeEdgeIsOne))
}

func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, pol := range []Polarity{PositiveEdgeIsOne, NegativeEdgeIsOne} {
		f := NewFrame(CapacityRepeater)
		for n := 0; n <= 2*f.Cap(); n++ {
			edges := make([]bool, n)
			for i := range edges {
				edges[i] = rnd.Intn(2) == 1
			}
			cnt, err := EncodeSlice(f, edges, 625, pol)
			require.NoError(t, err)
			require.Equal(t, n, cnt)
			d := Decode(f, edge.High)
			require.Equal(t, n, d.Length)
			require.Equal(t, uint64(n)*625, d.Total)
			require.Equalf(t, edges, d.Edges(pol), "len=%d polarity=%v", n, pol)
		}
	}
}

func TestCapacityBoundary(t *testing.T) {
	f := NewFrame(8)
	full := make([]bool, 16)
	n, err := EncodeSlice(f, full, 1, PositiveEdgeIsOne)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	for i := 0; i < f.Cap(); i++ {
		c := f.At(i)
		require.NotZero(t, c.Duration1)
		require.NotZero(t, c.Duration2)
	}
	require.Equal(t, 16, Decode(f, edge.Low).Length)

	_, err = EncodeSlice(f, make([]bool, 17), 1, PositiveEdgeIsOne)
	require.Equal(t, ErrOverflow, err)
}

func TestEncodeLazyOverflowStopsIterating(t *testing.T) {
	f := NewFrame(2)
	pulled := 0
	seq := func(yield func(bool) bool) {
		for {
			pulled++
			if !yield(true) {
				return
			}
		}
	}
	n, err := Encode(f, seq, 5, PositiveEdgeIsOne)
	require.Equal(t, ErrOverflow, err)
	require.Equal(t, 4, n)
	require.Equal(t, 5, pulled)
}

func TestEncodePeriod(t *testing.T) {
	f := NewFrame(2)
	_, err := EncodeSlice(f, []bool{true}, 0, PositiveEdgeIsOne)
	require.Equal(t, ErrPeriod, err)
	_, err = EncodeSlice(f, []bool{true}, MaxTicks+1, PositiveEdgeIsOne)
	require.Equal(t, ErrPeriod, err)
}

func TestEncodeClearsPreviousFrame(t *testing.T) {
	f := NewFrame(4)
	_, err := EncodeSlice(f, make([]bool, 8), 3, PositiveEdgeIsOne)
	require.NoError(t, err)
	_, err = EncodeSlice(f, []bool{true}, 3, PositiveEdgeIsOne)
	require.NoError(t, err)
	require.Equal(t, 1, f.Halves())
	require.Equal(t, Code{}, f.At(1))
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name   string
		codes  []Code
		length int
		total  uint64
	}{
		{"empty", nil, 0, 0},
		{"first half only", []Code{{Level1: true, Duration1: 7}}, 1, 7},
		{"stops at zero first half", []Code{
			{Level1: true, Duration1: 2, Duration2: 3},
			{},
			{Level1: true, Duration1: 9, Duration2: 9},
		}, 2, 5},
		{"zero second half ends frame", []Code{
			{Level1: true, Duration1: 2},
			{Level1: true, Duration1: 9, Duration2: 9},
		}, 1, 2},
		{"full", []Code{
			{Duration1: 1, Duration2: 2},
			{Duration1: 3, Duration2: 4},
		}, 4, 10},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFrame(2)
			copy(f.Codes(), tc.codes)
			d := Decode(f, edge.Low)
			require.Equal(t, tc.length, d.Length)
			require.Equal(t, tc.total, d.Total)
			require.Equal(t, tc.length, f.Halves())
		})
	}
}

func TestInvert(t *testing.T) {
	f := NewFrame(4)
	_, err := EncodeSlice(f, []bool{true, false, true}, 9, PositiveEdgeIsOne)
	require.NoError(t, err)
	orig := f.Clone()
	f.Invert()
	require.Equal(t, Code{Level1: false, Duration1: 9, Level2: true, Duration2: 9}, f.At(0))
	require.Equal(t, Code{Level1: false, Duration1: 9}, f.At(1))
	require.Equal(t, Code{}, f.At(2))
	require.Equal(t, Code{}, f.At(3))
	f.Invert()
	require.True(t, f.Equal(orig))
}

func TestCopyFrom(t *testing.T) {
	src := NewFrame(2)
	_, err := EncodeSlice(src, []bool{true, true}, 4, PositiveEdgeIsOne)
	require.NoError(t, err)
	dst := NewFrame(2)
	require.NoError(t, dst.CopyFrom(src))
	require.True(t, dst.Equal(src))
	require.Equal(t, ErrCapacity, NewFrame(3).CopyFrom(src))
}

func TestDurations(t *testing.T) {
	f := NewFrame(2)
	_, err := EncodeSlice(f, slices.Repeat([]bool{true}, 3), 10, PositiveEdgeIsOne)
	require.NoError(t, err)
	require.Len(t, f.Durations(1000), 3)
	require.EqualValues(t, 10000, f.Durations(1000)[2])
}
