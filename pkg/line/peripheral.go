package line

import (
	"time"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/pulse"
)

// Edge is one level transition observed on the line.
type Edge struct {
	// Level is the line level after the transition.
	Level bool
	// At is when the transition happened.
	At edge.Instant
}

// Receiver is the capture side of a pulse-timing peripheral.
type Receiver interface {
	// Level samples the current line level.
	Level() (bool, error)
	// WaitEdge blocks until the next transition or timeout.
	// A timeout returns ErrIdle.
	WaitEdge(timeout time.Duration) (Edge, error)
}

// Transmitter is the generation side of a pulse-timing peripheral.
type Transmitter interface {
	// Configure applies idle level and carrier settings.
	Configure(TxConfig) error
	// Transmit drives codes onto the line up to the first zero duration
	// and returns when the last half has been sent.
	Transmit(codes []pulse.Code) error
}

// Pin is a digital input.
type Pin interface {
	Get() bool
}

// OutputPin is a digital output.
type OutputPin interface {
	Set(bool)
}
