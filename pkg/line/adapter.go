package line

import (
	"iter"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/edgeline/pkg/edge"
)

// Adapter exposes a CaptureEngine and a TransmitEngine as edge.Bus.
type Adapter struct {
	capture   *CaptureEngine
	transmit  *TransmitEngine
	sendCount int
}

var _ edge.Bus = (*Adapter)(nil)

// NewAdapter composes the two engines.
func NewAdapter(c *CaptureEngine, t *TransmitEngine) *Adapter {
	return &Adapter{capture: c, transmit: t}
}

// Open builds both engines over rx and tx and composes them.
func Open(rx Receiver, tx Transmitter, conf *Config) (*Adapter, error) {
	c, err := NewCaptureEngine(rx, conf)
	if err != nil {
		return nil, err
	}
	t, err := NewTransmitEngine(tx, conf)
	if err != nil {
		return nil, err
	}
	return NewAdapter(c, t), nil
}

// CaptureEngine returns the capture engine.
func (a *Adapter) CaptureEngine() *CaptureEngine {
	return a.capture
}

// TransmitEngine returns the transmit engine.
func (a *Adapter) TransmitEngine() *TransmitEngine {
	return a.transmit
}

// SendCount is the number of successful triggers.
func (a *Adapter) SendCount() int {
	return a.sendCount
}

// StartCapture implements edge.EdgeCapture.
func (a *Adapter) StartCapture(idleBefore, idleBetween time.Duration) (edge.InitLevel, []time.Duration, error) {
	c, err := a.capture.Capture(idleBefore, idleBetween)
	if err != nil {
		return edge.Low, nil, err
	}
	return c.Init, c.Frame.Durations(a.capture.Resolution()), nil
}

// Trigger implements edge.EdgeTrigger.
func (a *Adapter) Trigger(edges iter.Seq[bool], period time.Duration) error {
	if err := a.transmit.Trigger(edges, period); err != nil {
		return err
	}
	a.sendCount++
	glog.V(4).Infof("trigger sent, count: %d", a.sendCount)
	return nil
}
