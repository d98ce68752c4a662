package edge

import (
	"iter"
	"time"
)

// InitLevel is the line level observed when a capture begins.
type InitLevel uint8

const (
	// Low means the line was low when capture started.
	Low InitLevel = iota
	// High means the line was high when capture started.
	High
)

// LevelOf converts a sampled pin value into InitLevel.
func LevelOf(high bool) InitLevel {
	if high {
		return High
	}
	return Low
}

// IsHigh reports whether the level is High.
func (l InitLevel) IsHigh() bool {
	return l == High
}

// String implements fmt.Stringer.
func (l InitLevel) String() string {
	if l == High {
		return "High"
	}
	return "Low"
}

// EdgeCapture captures one frame of level durations.
type EdgeCapture interface {
	// StartCapture waits up to idleBefore for line activity, then records
	// level durations until the line stays quiet for idleBetween or the
	// capture buffer is full. durations[0] is the first complete level
	// after the line leaves init; levels alternate from there.
	StartCapture(idleBefore, idleBetween time.Duration) (init InitLevel, durations []time.Duration, err error)
}

// EdgeTrigger drives an edge sequence onto the line.
type EdgeTrigger interface {
	// Trigger transmits one level per half-bit period and returns when
	// the whole sequence has left the peripheral.
	Trigger(edges iter.Seq[bool], period time.Duration) error
}

// Bus is the combined capability handed to a protocol state machine.
type Bus interface {
	EdgeCapture
	EdgeTrigger
}

// Instant is an opaque point on a monotonic time base.
type Instant time.Duration

// Sub returns the duration i-u.
func (i Instant) Sub(u Instant) time.Duration {
	return time.Duration(i - u)
}

// TimeBase provides "now" for scheduling.
type TimeBase interface {
	Now() Instant
}

// SystemTime is a TimeBase backed by the monotonic clock of the process.
type SystemTime struct {
	epoch time.Time
}

// NewSystemTime creates a SystemTime whose epoch is the call time.
func NewSystemTime() *SystemTime {
	return &SystemTime{epoch: time.Now()}
}

// Now implements TimeBase.
func (t *SystemTime) Now() Instant {
	return Instant(time.Since(t.epoch))
}
