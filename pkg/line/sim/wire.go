package sim

import (
	"errors"
	"sync"
	"time"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/line"
	"github.com/robotalks/edgeline/pkg/pulse"
)

// ErrOverrun is reported by a Tap whose edge buffer overflowed.
var ErrOverrun = errors.New("edge buffer overrun")

// DefaultTapDepth is the edge buffer size of a Tap.
const DefaultTapDepth = 1024

// Wire is a simulated physical line. Transmit implements line.Transmitter;
// every level change is timestamped and delivered to all taps.
type Wire struct {
	TimeBase   edge.TimeBase
	Resolution time.Duration
	// Realtime makes Transmit block for the duration of the frame.
	Realtime bool

	lock      sync.Mutex
	level     bool
	conf      line.TxConfig
	busyUntil edge.Instant
	taps      []*Tap
	failNext  error
	frames    int
}

// NewWire creates a Wire idling low.
func NewWire(tb edge.TimeBase, resolution time.Duration) *Wire {
	return &Wire{TimeBase: tb, Resolution: resolution}
}

// Tap attaches a receiver to the wire.
func (w *Wire) Tap(depth int) *Tap {
	if depth <= 0 {
		depth = DefaultTapDepth
	}
	t := &Tap{wire: w, edges: make(chan line.Edge, depth)}
	w.lock.Lock()
	w.taps = append(w.taps, t)
	w.lock.Unlock()
	return t
}

// Level returns the current line level.
func (w *Wire) Level() bool {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.level
}

// Config returns the last applied TxConfig.
func (w *Wire) Config() line.TxConfig {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.conf
}

// Frames counts completed transmissions.
func (w *Wire) Frames() int {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.frames
}

// FailNext makes the next Transmit fail with err.
func (w *Wire) FailNext(err error) {
	w.lock.Lock()
	w.failNext = err
	w.lock.Unlock()
}

// Configure implements line.Transmitter. The idle level is applied
// without emitting an edge.
func (w *Wire) Configure(conf line.TxConfig) error {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.conf = conf
	if conf.IdleOutput {
		w.level = conf.IdleLevel
	}
	return nil
}

// Drive sets the line level directly, as another bus party would.
func (w *Wire) Drive(level bool) {
	w.lock.Lock()
	w.drive(level, w.startTime())
	w.lock.Unlock()
}

// Transmit implements line.Transmitter.
func (w *Wire) Transmit(codes []pulse.Code) error {
	w.lock.Lock()
	if err := w.failNext; err != nil {
		w.failNext = nil
		w.lock.Unlock()
		return err
	}
	start := w.startTime()
	t := start
	for _, c := range codes {
		if c.Duration1 == 0 {
			break
		}
		w.drive(c.Level1, t)
		t += edge.Instant(time.Duration(c.Duration1) * w.Resolution)
		if c.Duration2 == 0 {
			break
		}
		w.drive(c.Level2, t)
		t += edge.Instant(time.Duration(c.Duration2) * w.Resolution)
	}
	if w.conf.IdleOutput {
		w.drive(w.conf.IdleLevel, t)
	}
	w.busyUntil = t
	w.frames++
	w.lock.Unlock()

	if w.Realtime {
		time.Sleep(t.Sub(start))
	}
	return nil
}

func (w *Wire) startTime() edge.Instant {
	t := w.TimeBase.Now()
	if t < w.busyUntil {
		t = w.busyUntil
	}
	return t
}

func (w *Wire) drive(level bool, at edge.Instant) {
	if level == w.level {
		return
	}
	w.level = level
	for _, tap := range w.taps {
		tap.push(line.Edge{Level: level, At: at})
	}
}

// Tap is a line.Receiver listening on a Wire.
type Tap struct {
	wire  *Wire
	edges chan line.Edge

	lock     sync.Mutex
	overrun  bool
	failNext error
}

// Level implements line.Receiver.
func (t *Tap) Level() (bool, error) {
	return t.wire.Level(), nil
}

// Fail makes the next WaitEdge fail with err.
func (t *Tap) Fail(err error) {
	t.lock.Lock()
	t.failNext = err
	t.lock.Unlock()
}

// Drain discards buffered edges and returns how many were dropped.
func (t *Tap) Drain() int {
	n := 0
	for {
		select {
		case <-t.edges:
			n++
		default:
			return n
		}
	}
}

// WaitEdge implements line.Receiver.
func (t *Tap) WaitEdge(timeout time.Duration) (line.Edge, error) {
	t.lock.Lock()
	err := t.failNext
	t.failNext = nil
	if err == nil && t.overrun {
		t.overrun, err = false, ErrOverrun
	}
	t.lock.Unlock()
	if err != nil {
		return line.Edge{}, err
	}

	select {
	case e := <-t.edges:
		return e, nil
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case e := <-t.edges:
		return e, nil
	case <-timer.C:
		return line.Edge{}, line.ErrIdle
	}
}

func (t *Tap) push(e line.Edge) {
	select {
	case t.edges <- e:
	default:
		t.lock.Lock()
		t.overrun = true
		t.lock.Unlock()
	}
}
