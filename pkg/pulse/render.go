package pulse

import (
	"fmt"
	"strings"
)

// DefaultWidth is the nominal trace width in characters.
const DefaultWidth = 80

// Render draws the populated halves of f as a proportional ASCII trace:
// round(width*duration/total)+1 characters of '-' for high and '_' for low.
func Render(f *Frame, width int) string {
	return RenderN(f, f.Halves(), width)
}

// RenderN renders only the first n halves, as when a cached length is reused.
// A negative width renders as zero.
func RenderN(f *Frame, n, width int) string {
	if width < 0 {
		width = 0
	}
	if limit := 2 * f.Cap(); n > limit {
		n = limit
	}
	var total uint64
	for i := 0; i < n; i++ {
		_, d := f.codes[i/2].Half(i % 2)
		total += uint64(d)
	}
	if total == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(width + 2*n)
	w := uint64(width)
	for i := 0; i < n; i++ {
		level, d := f.codes[i/2].Half(i % 2)
		count := (2*w*uint64(d)+total)/(2*total) + 1
		c := byte('_')
		if level {
			c = '-'
		}
		for j := uint64(0); j < count; j++ {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Dump lists the populated codes of f, one "[i]: l1=<d1> l2=<d2>" line each.
func Dump(f *Frame) []string {
	var lines []string
	for i, c := range f.codes {
		if c.Duration1 == 0 {
			break
		}
		lines = append(lines, fmt.Sprintf("[%d]: l1=%d l2=%d", i, c.Duration1, c.Duration2))
		if c.Duration2 == 0 {
			break
		}
	}
	return lines
}
