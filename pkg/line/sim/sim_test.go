package sim

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/edgeline/pkg/edge"
	"github.com/robotalks/edgeline/pkg/line"
	"github.com/robotalks/edgeline/pkg/pulse"
)

func benchConfig() *line.Config {
	conf := line.NewConfig()
	conf.ClockHz = 1000000
	conf.ClockDivider = 1
	conf.Capacity = pulse.CapacityRepeater
	conf.NegativeEdgeIsBinaryOne = false
	conf.IdleThreshold = 5 * time.Millisecond
	conf.Tx.IdleOutput = true
	conf.Tx.IdleLevel = false
	return conf
}

func TestWireLoopback(t *testing.T) {
	conf := benchConfig()
	b := NewBench(conf, false)
	master, err := b.Master(conf)
	require.NoError(t, err)
	rep, err := b.Repeater(conf)
	require.NoError(t, err)

	edges := []bool{true, false, false, true, true, false}
	require.NoError(t, master.Trigger(slices.Values(edges), 500*time.Microsecond))
	require.Equal(t, 1, b.Bus.Frames())
	require.False(t, b.Bus.Level())

	c, err := rep.CaptureEngine().Capture(10*time.Millisecond, conf.IdleThreshold)
	require.NoError(t, err)
	require.Equal(t, edge.Low, c.Init)
	require.Equal(t, 3, c.Decoded.Length)
	require.Equal(t, uint64(2500), c.Decoded.Total)
	require.Equal(t, pulse.Code{Level1: true, Duration1: 500, Level2: false, Duration2: 1000}, c.Frame.At(0))
	require.Equal(t, pulse.Code{Level1: true, Duration1: 1000}, c.Frame.At(1))

	// replaying the capture on the reply line reproduces it on the master side
	require.NoError(t, rep.TransmitEngine().TransmitFrame(c.Frame))
	back, err := master.CaptureEngine().Capture(10*time.Millisecond, conf.IdleThreshold)
	require.NoError(t, err)
	require.True(t, c.Frame.Equal(back.Frame))
}

func TestWireConfigure(t *testing.T) {
	w := NewWire(edge.NewSystemTime(), time.Microsecond)
	tap := w.Tap(4)
	require.NoError(t, w.Configure(line.TxConfig{IdleOutput: true, IdleLevel: true}))
	require.True(t, w.Level())
	require.True(t, w.Config().IdleLevel)
	_, err := tap.WaitEdge(time.Millisecond)
	require.Equal(t, line.ErrIdle, err)
}

func TestWireTimestampsDoNotOverlap(t *testing.T) {
	w := NewWire(edge.NewSystemTime(), time.Millisecond)
	tap := w.Tap(0)
	codes := []pulse.Code{{Level1: true, Duration1: 1000, Level2: false, Duration2: 1000}}
	require.NoError(t, w.Transmit(codes))
	require.NoError(t, w.Transmit(codes))
	var last edge.Instant
	for i := 0; i < 4; i++ {
		e, err := tap.WaitEdge(time.Millisecond)
		require.NoError(t, err)
		if i > 0 {
			require.Truef(t, e.At.Sub(last) >= time.Second, "edge %d", i)
		}
		last = e.At
	}
}

func TestFaultInjection(t *testing.T) {
	conf := benchConfig()
	b := NewBench(conf, false)
	rep, err := b.Repeater(conf)
	require.NoError(t, err)

	failure := errors.New("rmt error")
	b.Reply.FailNext(failure)
	err = rep.Trigger(slices.Values([]bool{true}), time.Millisecond)
	var te *edge.TriggerError
	require.True(t, errors.As(err, &te))
	require.Equal(t, edge.TriggerFailed, te.Kind)
	require.True(t, errors.Is(err, failure))
	require.NoError(t, rep.Trigger(slices.Values([]bool{true}), time.Millisecond))

	tap := b.Bus.Tap(0)
	tap.Fail(failure)
	_, err = tap.WaitEdge(time.Millisecond)
	require.Equal(t, failure, err)
}

func TestTapOverrun(t *testing.T) {
	w := NewWire(edge.NewSystemTime(), time.Microsecond)
	tap := w.Tap(1)
	w.Drive(true)
	w.Drive(false)
	_, err := tap.WaitEdge(time.Millisecond)
	require.Equal(t, ErrOverrun, err)
	e, err := tap.WaitEdge(time.Millisecond)
	require.NoError(t, err)
	require.True(t, e.Level)
	require.Zero(t, tap.Drain())
}

func TestPin(t *testing.T) {
	p := NewPin(false)
	p.Set(false)
	require.Zero(t, p.Changes())
	p.Set(true)
	require.True(t, p.Get())
	p.Toggle()
	require.False(t, p.Get())
	require.Equal(t, 2, p.Changes())
}

func TestManchesterEdges(t *testing.T) {
	edges := ManchesterEdges(0x80000001)
	require.Len(t, edges, 68)
	require.Equal(t, []bool{false, true}, edges[:2])
	require.Equal(t, []bool{false, true}, edges[2:4])
	require.Equal(t, []bool{true, false}, edges[4:6])
	require.Equal(t, []bool{false, true}, edges[64:66])
	require.Equal(t, []bool{false, true}, edges[66:])
}

type triggerFunc func(edges iter.Seq[bool], period time.Duration) error

func (f triggerFunc) Trigger(edges iter.Seq[bool], period time.Duration) error {
	return f(edges, period)
}

func TestMaster(t *testing.T) {
	sent := make(chan []bool, 4)
	pin := NewPin(false)
	m := &Master{
		Trigger:  pin,
		Interval: 5 * time.Millisecond,
		Lead:     time.Millisecond,
		Period:   500 * time.Microsecond,
		Message:  func(n int) uint32 { return uint32(n) + 1 },
		Bus: triggerFunc(func(edges iter.Seq[bool], period time.Duration) error {
			select {
			case sent <- slices.Collect(edges):
			default:
			}
			return nil
		}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case edges := <-sent:
		require.Equal(t, ManchesterEdges(1), edges)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("master did not send")
	}
	cancel()
	select {
	case err := <-done:
		require.Equal(t, context.Canceled, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("master did not stop")
	}
	require.True(t, pin.Changes() >= 1)
}
