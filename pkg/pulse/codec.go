package pulse

import (
	"iter"
	"slices"

	"github.com/robotalks/edgeline/pkg/edge"
)

// Polarity fixes which transition direction carries a logical one.
// Encoding maps edge e to level Polarity XOR e; decoding reverses it.
type Polarity bool

const (
	// PositiveEdgeIsOne transmits edge values unchanged.
	PositiveEdgeIsOne Polarity = false
	// NegativeEdgeIsOne inverts every edge value on the line.
	NegativeEdgeIsOne Polarity = true
)

// Level maps an edge value to the line level.
func (p Polarity) Level(e bool) bool {
	return bool(p) != e
}

// Edge maps a line level back to the edge value.
func (p Polarity) Edge(level bool) bool {
	return bool(p) != level
}

// Encode resets dst and writes edges into it, one half per edge, each
// lasting period ticks. It returns the number of halves written.
// More than 2*dst.Cap() edges is ErrOverflow; dst must then be discarded.
func Encode(dst *Frame, edges iter.Seq[bool], period uint16, pol Polarity) (int, error) {
	if period == 0 || period > MaxTicks {
		return 0, ErrPeriod
	}
	dst.Reset()
	limit := 2 * dst.Cap()
	n := 0
	overflow := false
	for e := range edges {
		if n >= limit {
			overflow = true
			break
		}
		dst.SetHalf(n, pol.Level(e), period)
		n++
	}
	if overflow {
		return n, ErrOverflow
	}
	return n, nil
}

// EncodeSlice is Encode over a slice.
func EncodeSlice(dst *Frame, edges []bool, period uint16, pol Polarity) (int, error) {
	return Encode(dst, slices.Values(edges), period, pol)
}

// Decoded is the result of walking a frame.
type Decoded struct {
	// Init is the line level that preceded the frame.
	Init edge.InitLevel
	// Length counts the populated halves.
	Length int
	// Total is the sum of all populated durations, in ticks.
	Total uint64
	// Levels holds the level of each populated half.
	Levels []bool
}

// Decode walks f from the first code and stops at the first zero
// duration or at capacity.
func Decode(f *Frame, init edge.InitLevel) Decoded {
	d := Decoded{Init: init, Levels: make([]bool, 0, 2*f.Cap())}
	for _, c := range f.codes {
		if c.Duration1 == 0 {
			break
		}
		d.Total += uint64(c.Duration1)
		d.Levels = append(d.Levels, c.Level1)
		if c.Duration2 == 0 {
			break
		}
		d.Total += uint64(c.Duration2)
		d.Levels = append(d.Levels, c.Level2)
	}
	d.Length = len(d.Levels)
	return d
}

// Edges maps the decoded levels back to edge values.
func (d Decoded) Edges(pol Polarity) []bool {
	out := make([]bool, len(d.Levels))
	for i, l := range d.Levels {
		out[i] = pol.Edge(l)
	}
	return out
}
