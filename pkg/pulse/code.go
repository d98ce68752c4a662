package pulse

import "time"

// MaxTicks is the largest duration a half of a Code can hold.
const MaxTicks uint16 = 0x7fff

// Standard frame capacities, in codes.
const (
	CapacityRepeater = 48
	CapacityProtocol = 128
)

// Code is one pulse codeword: two (level, duration) halves.
// Durations are in peripheral ticks; zero marks the end of a frame.
type Code struct {
	Level1    bool
	Duration1 uint16
	Level2    bool
	Duration2 uint16
}

// Half returns the level and duration of half h (0 or 1).
func (c Code) Half(h int) (level bool, duration uint16) {
	if h == 0 {
		return c.Level1, c.Duration1
	}
	return c.Level2, c.Duration2
}

// Frame is a fixed-capacity sequence of codes.
// The populated prefix is followed by a zero-filled tail.
type Frame struct {
	codes []Code
}

// NewFrame allocates a zeroed frame of capacity codes.
func NewFrame(capacity int) *Frame {
	if capacity <= 0 {
		panic("pulse: frame capacity must be positive")
	}
	return &Frame{codes: make([]Code, capacity)}
}

// Cap returns the capacity in codes. A frame holds up to 2*Cap halves.
func (f *Frame) Cap() int {
	return len(f.codes)
}

// Codes exposes the underlying codes for handing to a peripheral.
func (f *Frame) Codes() []Code {
	return f.codes
}

// At returns code i.
func (f *Frame) At(i int) Code {
	return f.codes[i]
}

// SetHalf sets half index i (code i/2, half i%2).
func (f *Frame) SetHalf(i int, level bool, duration uint16) {
	c := &f.codes[i/2]
	if i%2 == 0 {
		c.Level1, c.Duration1 = level, duration
	} else {
		c.Level2, c.Duration2 = level, duration
	}
}

// Reset zero-fills all codes.
func (f *Frame) Reset() {
	clear(f.codes)
}

// Clone returns a deep copy.
func (f *Frame) Clone() *Frame {
	c := &Frame{codes: make([]Code, len(f.codes))}
	copy(c.codes, f.codes)
	return c
}

// CopyFrom overwrites f with src. Both must have the same capacity.
func (f *Frame) CopyFrom(src *Frame) error {
	if len(src.codes) != len(f.codes) {
		return ErrCapacity
	}
	copy(f.codes, src.codes)
	return nil
}

// Equal compares capacity and every code.
func (f *Frame) Equal(o *Frame) bool {
	if len(f.codes) != len(o.codes) {
		return false
	}
	for i := range f.codes {
		if f.codes[i] != o.codes[i] {
			return false
		}
	}
	return true
}

// Halves counts the populated halves, following the same rule as Decode.
func (f *Frame) Halves() int {
	n := 0
	for _, c := range f.codes {
		if c.Duration1 == 0 {
			break
		}
		n++
		if c.Duration2 == 0 {
			break
		}
		n++
	}
	return n
}

// Invert flips the level of every populated half in place.
// The zero tail is left untouched.
func (f *Frame) Invert() {
	n := f.Halves()
	for i := 0; i < n; i++ {
		c := &f.codes[i/2]
		if i%2 == 0 {
			c.Level1 = !c.Level1
		} else {
			c.Level2 = !c.Level2
		}
	}
}

// Durations converts the populated halves into time using resolution per tick.
func (f *Frame) Durations(resolution time.Duration) []time.Duration {
	n := f.Halves()
	out := make([]time.Duration, n)
	for i := 0; i < n; i++ {
		_, d := f.codes[i/2].Half(i % 2)
		out[i] = time.Duration(d) * resolution
	}
	return out
}
