package pulse

import "errors"

var (
	// ErrOverflow indicates an edge sequence longer than 2*Cap of the frame.
	ErrOverflow = errors.New("edge sequence exceeds frame capacity")
	// ErrPeriod indicates a half period of zero ticks or above MaxTicks.
	ErrPeriod = errors.New("half period out of range")
	// ErrCapacity indicates frames of different capacity.
	ErrCapacity = errors.New("frame capacity mismatch")
)
