// Package bench assembles a repeater board on simulated hardware: the
// repeater with its trigger watcher and status LED on one side of the bus,
// a bus master on the other.
package bench

import (
	"slices"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/edgeline/pkg/framework"
	"github.com/robotalks/edgeline/pkg/line"
	"github.com/robotalks/edgeline/pkg/line/sim"
	"github.com/robotalks/edgeline/pkg/repeater"
	"github.com/robotalks/edgeline/pkg/report"
)

// DefaultPeriod is the OpenTherm half-bit period.
const DefaultPeriod = 500 * time.Microsecond

// Options configures a Bench.
type Options struct {
	Line     *line.Config
	Repeater *repeater.Config
	// Realtime makes transmissions take their wall clock duration.
	Realtime  bool
	Publisher report.Publisher
	// Cache defaults to repeater.Shared.
	Cache *repeater.Cache
}

// Bench is a simulated repeater board.
type Bench struct {
	*sim.Bench
	Line     *line.Config
	Master   *line.Adapter
	Port     *line.Adapter
	Repeater *repeater.Repeater
	Watcher  *repeater.TriggerWatcher
	Blink    *repeater.StatusBlink
}

// New creates a Bench.
func New(opts Options) (*Bench, error) {
	if err := opts.Repeater.Validate(); err != nil {
		return nil, err
	}
	b := &Bench{Bench: sim.NewBench(opts.Line, opts.Realtime), Line: opts.Line}
	var err error
	if b.Master, err = b.Bench.Master(opts.Line); err != nil {
		return nil, err
	}
	if b.Port, err = b.Bench.Repeater(opts.Line); err != nil {
		return nil, err
	}
	b.Repeater = repeater.New(opts.Repeater, b.Port.CaptureEngine(), b.Port.TransmitEngine(), opts.Cache)
	b.Repeater.Publisher = opts.Publisher
	b.Watcher = repeater.NewTriggerWatcher(b.Trigger, b.Repeater, opts.Repeater.Debounce)
	b.Blink = repeater.NewStatusBlink(b.Status, opts.Repeater.BlinkInterval)
	return b, nil
}

// AddToLoop implements framework.LoopAdder.
func (b *Bench) AddToLoop(l *framework.Loop) {
	l.Add(b.Watcher, b.Blink, b.Repeater)
}

// NewLoop creates a Loop polling at the repeater's poll interval with the
// bench added.
func (b *Bench) NewLoop() *framework.Loop {
	l := framework.NewLoop()
	l.Interval = b.Repeater.PollInterval
	return l.Add(b)
}

// SendEdges flips the trigger pin and sends edges from the master.
func (b *Bench) SendEdges(edges []bool, period time.Duration) error {
	b.Trigger.Toggle()
	if err := b.Master.Trigger(slices.Values(edges), period); err != nil {
		return err
	}
	glog.V(2).Infof("master sent %d edges", len(edges))
	return nil
}

// Send sends msg Manchester coded.
func (b *Bench) Send(msg uint32, period time.Duration) error {
	return b.SendEdges(sim.ManchesterEdges(msg), period)
}

// CaptureReply captures what the repeater sent back.
func (b *Bench) CaptureReply(idleBefore time.Duration) (*line.Capture, error) {
	return b.Master.CaptureEngine().Capture(idleBefore, b.Line.IdleThreshold)
}

// DemoMaster creates a Runnable sending a counter every interval.
func (b *Bench) DemoMaster(interval, period time.Duration) *sim.Master {
	return &sim.Master{
		Trigger:  b.Trigger,
		Bus:      b.Master,
		Interval: interval,
		Lead:     b.Repeater.PollInterval,
		Period:   period,
	}
}
