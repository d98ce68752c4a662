package repeater

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/edgeline/pkg/framework"
	"github.com/robotalks/edgeline/pkg/line"
	"github.com/robotalks/edgeline/pkg/pulse"
	"github.com/robotalks/edgeline/pkg/report"
)

// State of the repeater.
type State int

// States.
const (
	Idle State = iota
	Capturing
	Deciding
	Storing
	Replaying
)

var stateNames = [...]string{"Idle", "Capturing", "Deciding", "Storing", "Replaying"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Capturer captures one frame.
type Capturer interface {
	Capture(idleBefore, idleBetween time.Duration) (*line.Capture, error)
}

// Replayer transmits an encoded frame.
type Replayer interface {
	TransmitFrame(*pulse.Frame) error
}

// Repeater runs one capture/store/replay cycle per trigger.
type Repeater struct {
	Config
	// Publisher receives a report of every non-empty cycle. Optional.
	Publisher report.Publisher

	capture   Capturer
	replay    Replayer
	cache     *Cache
	triggerCh chan struct{}

	lock     sync.Mutex
	state    State
	received int
	cycles   int
}

// New creates a Repeater. A nil cache selects Shared.
func New(conf *Config, c Capturer, r Replayer, cache *Cache) *Repeater {
	if cache == nil {
		cache = Shared
	}
	return &Repeater{
		Config:    *conf,
		capture:   c,
		replay:    r,
		cache:     cache,
		triggerCh: make(chan struct{}, 1),
	}
}

// Cache returns the cache used by the repeater.
func (r *Repeater) Cache() *Cache {
	return r.cache
}

// Trigger requests one cycle. Triggers arriving while one is pending
// are merged.
func (r *Repeater) Trigger() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
	}
}

// State returns the current state.
func (r *Repeater) State() State {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.state
}

// Received is the length in halves of the last capture.
func (r *Repeater) Received() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.received
}

// Cycles counts completed cycles, failed ones included.
func (r *Repeater) Cycles() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.cycles
}

func (r *Repeater) setState(s State) {
	r.lock.Lock()
	r.state = s
	r.lock.Unlock()
	glog.V(2).Infof("repeater %s", s)
}

// AddToLoop implements framework.LoopAdder.
func (r *Repeater) AddToLoop(l *framework.Loop) {
	l.AddRunnable(framework.NamedRun("repeater", r))
}

// Run implements framework.Runnable. ctx is only checked between cycles.
func (r *Repeater) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.triggerCh:
		}
		if _, err := r.Cycle(); err != nil {
			glog.Errorf("repeater cycle failed: %v", err)
		}
	}
}

// Cycle captures a frame and either caches or replays it. The returned
// report is nil when nothing was captured.
func (r *Repeater) Cycle() (rep *report.Report, err error) {
	defer func() {
		r.lock.Lock()
		r.state = Idle
		r.cycles++
		r.lock.Unlock()
	}()

	r.setState(Capturing)
	c, err := r.capture.Capture(r.IdleBefore, r.IdleBetween)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	r.lock.Lock()
	r.received = c.Decoded.Length
	r.lock.Unlock()
	if c.Decoded.Length == 0 {
		glog.V(2).Info("no activity")
		return nil, nil
	}
	if glog.V(2) {
		for _, s := range pulse.Dump(c.Frame) {
			glog.Info(s)
		}
	}

	r.setState(Deciding)
	frame, length, init := c.Frame, c.Decoded.Length, c.Init
	if r.Invert {
		frame.Invert()
		init = edgeInvert(init)
	}
	action := report.ActionStore
	if r.cache.StoreFirst(frame, length, init) {
		r.setState(Storing)
	} else {
		if r.Latch == LatchEvery {
			r.cache.Replace(frame, length, init)
		}
		r.setState(Replaying)
		var ok bool
		if frame, length, init, ok = r.cache.Snapshot(); !ok {
			return nil, fmt.Errorf("cache cleared during cycle")
		}
		if err := r.replay.TransmitFrame(frame); err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		action = report.ActionReplay
	}

	rep = report.FromFrame(frame, length, init, action, r.Width)
	rep.Truncated = c.Truncated
	glog.Infof("%s %d halves, total %d\n%s", action, rep.Length, rep.TotalTicks, rep.Trace)
	if r.Publisher != nil {
		if err := r.Publisher.Publish(rep); err != nil {
			return rep, fmt.Errorf("publish: %w", err)
		}
	}
	return rep, nil
}
