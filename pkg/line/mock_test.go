package line

import (
	"sync"
	"time"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/pulse"
)

type mockEvent struct {
	edge Edge
	err  error
}

type mockReceiver struct {
	lock     sync.Mutex
	level    bool
	levelErr error
	events   []mockEvent
	timeouts []time.Duration
}

func (r *mockReceiver) Level() (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.level, r.levelErr
}

func (r *mockReceiver) WaitEdge(timeout time.Duration) (Edge, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.timeouts = append(r.timeouts, timeout)
	if len(r.events) == 0 {
		return Edge{}, ErrIdle
	}
	ev := r.events[0]
	r.events = r.events[1:]
	return ev.edge, ev.err
}

func (r *mockReceiver) push(events ...mockEvent) {
	r.lock.Lock()
	r.events = append(r.events, events...)
	r.lock.Unlock()
}

// alternating produces edges starting at level first, at t=start and then
// separated by gaps.
func alternating(first bool, start edge.Instant, gaps ...time.Duration) []mockEvent {
	events := []mockEvent{{edge: Edge{Level: first, At: start}}}
	level, at := first, start
	for _, gap := range gaps {
		level, at = !level, at+edge.Instant(gap)
		events = append(events, mockEvent{edge: Edge{Level: level, At: at}})
	}
	return events
}

type mockTransmitter struct {
	lock    sync.Mutex
	conf    *TxConfig
	frames  [][]pulse.Code
	failErr error
}

func (t *mockTransmitter) Configure(conf TxConfig) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.conf = &conf
	return nil
}

func (t *mockTransmitter) Transmit(codes []pulse.Code) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.failErr != nil {
		return t.failErr
	}
	t.frames = append(t.frames, append([]pulse.Code(nil), codes...))
	return nil
}

// testConfig ticks at 1ns so durations map 1:1 to ticks.
func testConfig(capacity int) *Config {
	conf := NewConfig()
	conf.ClockHz = 1000000000
	conf.ClockDivider = 1
	conf.Capacity = capacity
	conf.NegativeEdgeIsBinaryOne = false
	conf.IdlePolicy = IdleEmpty
	conf.IdleThreshold = time.Millisecond
	return conf
}
