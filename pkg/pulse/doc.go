// Package pulse converts between edge sequences and pulse codes.
package pulse

// A pulse code is a pair of (level, duration) half-periods as produced and
// consumed by a pulse-timing peripheral. Two logical half-bit edges pack
// into one code; a zero duration ends the frame.
//
//	_____|''|_____|''|__|''|__    ___|''|__|'''''|__|''|___
//	-----|  1  |  0  |  0  |      |  0  |  0  |  1  |  1  |
//
// Nothing in this package performs I/O and, apart from Clone, Decode and
// Render, nothing allocates after NewFrame.
