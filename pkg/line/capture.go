package line

import (
	"errors"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/pulse"
)

// Capture is one completed capture.
type Capture struct {
	Init edge.InitLevel
	// Frame is owned by the caller.
	Frame   *pulse.Frame
	Decoded pulse.Decoded
	// Truncated is set when the frame filled up before the line went idle.
	Truncated bool
}

// maxDrainFrames bounds the edges discarded after truncation, in frames.
const maxDrainFrames = 4

// CaptureEngine records level durations from a Receiver into a frame.
type CaptureEngine struct {
	rx      Receiver
	conf    Config
	frame   *pulse.Frame
	carry   Edge
	carryOK bool
}

// NewCaptureEngine creates a CaptureEngine.
func NewCaptureEngine(rx Receiver, conf *Config) (*CaptureEngine, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &CaptureEngine{
		rx:    rx,
		conf:  *conf,
		frame: pulse.NewFrame(conf.Capacity),
	}, nil
}

// Capacity returns the frame capacity in codes.
func (e *CaptureEngine) Capacity() int {
	return e.frame.Cap()
}

// Resolution returns the tick duration.
func (e *CaptureEngine) Resolution() time.Duration {
	return e.conf.Resolution()
}

// Capture waits up to idleBefore for the first edge, then records the
// level between consecutive edges until idleBetween passes without a new
// edge or the frame is full.
//
// An edge arriving later than idleBetween after the previous one closes
// the frame and opens the next capture.
func (e *CaptureEngine) Capture(idleBefore, idleBetween time.Duration) (*Capture, error) {
	e.frame.Reset()
	high, err := e.rx.Level()
	if err != nil {
		return nil, &edge.CaptureError{Err: err}
	}
	init := edge.LevelOf(high)

	var prev Edge
	if e.carryOK {
		prev, e.carryOK = e.carry, false
		init = edge.LevelOf(!prev.Level)
	} else {
		prev, err = e.rx.WaitEdge(idleBefore)
		if errors.Is(err, ErrIdle) {
			if e.conf.IdlePolicy == IdleTimeout {
				return nil, edge.ErrNoActivity
			}
			return e.result(init, false), nil
		}
		if err != nil {
			return nil, &edge.CaptureError{Err: err}
		}
	}

	limit := 2 * e.frame.Cap()
	for n := 0; n < limit; n++ {
		next, err := e.rx.WaitEdge(idleBetween)
		if errors.Is(err, ErrIdle) {
			return e.result(init, false), nil
		}
		if err != nil {
			return nil, &edge.CaptureError{Err: err}
		}
		gap := next.At.Sub(prev.At)
		if gap < 0 || next.Level == prev.Level {
			return nil, &edge.CaptureError{Err: ErrMalformed}
		}
		if gap > idleBetween {
			e.carry, e.carryOK = next, true
			return e.result(init, false), nil
		}
		e.frame.SetHalf(n, prev.Level, e.ticks(gap))
		prev = next
	}
	truncated := e.drain(prev, idleBetween, maxDrainFrames*limit) > 0
	if truncated {
		glog.Warningf("capture truncated at %d halves", limit)
	}
	return e.result(init, truncated), nil
}

// drain discards at most limit edges following a full frame so they do not
// open the next capture, and returns how many were discarded. Malformed
// edges and peripheral errors are ignored.
func (e *CaptureEngine) drain(prev Edge, idleBetween time.Duration, limit int) (n int) {
	for ; n < limit; n++ {
		next, err := e.rx.WaitEdge(idleBetween)
		if errors.Is(err, ErrIdle) {
			return
		}
		if err != nil {
			glog.Warningf("drain truncated frame: %v", err)
			return
		}
		if next.At.Sub(prev.At) > idleBetween {
			e.carry, e.carryOK = next, true
			return
		}
		prev = next
	}
	glog.Warningf("line still active after draining %d edges", limit)
	return
}

func (e *CaptureEngine) ticks(d time.Duration) uint16 {
	if t, ok := e.conf.Ticks(d); ok {
		return t
	}
	if d > 0 && d >= e.conf.Resolution() {
		return pulse.MaxTicks
	}
	// shorter than one tick still occupies a half
	return 1
}

func (e *CaptureEngine) result(init edge.InitLevel, truncated bool) *Capture {
	f := e.frame.Clone()
	return &Capture{
		Init:      init,
		Frame:     f,
		Decoded:   pulse.Decode(f, init),
		Truncated: truncated,
	}
}
