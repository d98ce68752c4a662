package line

import (
	"errors"
	"iter"
	"time"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/pulse"
)

// TransmitEngine encodes edge sequences and drives them through a Transmitter.
type TransmitEngine struct {
	tx    Transmitter
	conf  Config
	frame *pulse.Frame
}

// NewTransmitEngine creates a TransmitEngine and configures the Transmitter.
func NewTransmitEngine(tx Transmitter, conf *Config) (*TransmitEngine, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if err := tx.Configure(conf.Tx); err != nil {
		return nil, err
	}
	return &TransmitEngine{
		tx:    tx,
		conf:  *conf,
		frame: pulse.NewFrame(conf.Capacity),
	}, nil
}

// Capacity returns the frame capacity in codes.
func (e *TransmitEngine) Capacity() int {
	return e.frame.Cap()
}

// Trigger encodes edges with the configured polarity at period per half
// and transmits them. A sequence longer than one frame is rejected before
// anything is sent.
func (e *TransmitEngine) Trigger(edges iter.Seq[bool], period time.Duration) error {
	ticks, ok := e.conf.Ticks(period)
	if !ok {
		return &edge.TriggerError{Kind: edge.InvalidPeriod, Err: pulse.ErrPeriod}
	}
	if _, err := pulse.Encode(e.frame, edges, ticks, e.conf.Polarity()); err != nil {
		e.frame.Reset()
		if errors.Is(err, pulse.ErrOverflow) {
			return &edge.TriggerError{Kind: edge.CapacityExceeded, Err: err}
		}
		return &edge.TriggerError{Kind: edge.InvalidPeriod, Err: err}
	}
	return e.TransmitFrame(e.frame)
}

// TransmitFrame sends an already encoded frame.
func (e *TransmitEngine) TransmitFrame(f *pulse.Frame) error {
	if err := e.tx.Transmit(f.Codes()); err != nil {
		return &edge.TriggerError{Kind: edge.TriggerFailed, Err: err}
	}
	return nil
}
